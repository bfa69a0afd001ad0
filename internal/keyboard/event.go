package keyboard

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyboardEvent is the subset of a DOM KeyboardEvent the mapper reads.
// Key uses DOM key names: "ArrowUp", "Escape", "Enter", "Tab", " ", "a".
type KeyboardEvent interface {
	Key() string
	ShiftKey() bool
	MetaKey() bool
	CtrlKey() bool
	PreventDefault()
}

// Event is a plain KeyboardEvent that records PreventDefault
type Event struct {
	Name  string
	Shift bool
	Meta  bool
	Ctrl  bool

	prevented bool
}

func (e *Event) Key() string            { return e.Name }
func (e *Event) ShiftKey() bool         { return e.Shift }
func (e *Event) MetaKey() bool          { return e.Meta }
func (e *Event) CtrlKey() bool          { return e.Ctrl }
func (e *Event) PreventDefault()        { e.prevented = true }
func (e *Event) DefaultPrevented() bool { return e.prevented }

// terminal key names -> DOM key names
var domKeyNames = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"tab":       "Tab",
	"enter":     "Enter",
	"esc":       "Escape",
	"space":     " ",
	"backspace": "Backspace",
	"delete":    "Delete",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
}

// FromKeyMsg converts a bubbletea key message to an Event.
// Terminals report Option/Alt where a browser reports Meta, so alt maps to Meta.
func FromKeyMsg(msg tea.KeyMsg) *Event {
	name := msg.String()
	ev := &Event{}

	for stripped := true; stripped; {
		stripped = false
		for _, mod := range []string{"ctrl+", "alt+", "shift+"} {
			if !strings.HasPrefix(name, mod) || len(name) == len(mod) {
				continue
			}
			name = strings.TrimPrefix(name, mod)
			stripped = true
			switch mod {
			case "ctrl+":
				ev.Ctrl = true
			case "alt+":
				ev.Meta = true
			case "shift+":
				ev.Shift = true
			}
		}
	}

	if dom, ok := domKeyNames[name]; ok {
		ev.Name = dom
		return ev
	}

	ev.Name = name
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsUpper(r) {
		ev.Shift = true
	}
	return ev
}
