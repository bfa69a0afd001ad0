package keyboard

import (
	"fmt"

	"blockcanvas/internal/config"
	"blockcanvas/internal/selection"
)

// Mapper turns key events into selection actions
type Mapper struct {
	actions *selection.Actions
	config  config.KeyboardConfig
}

// NewMapper creates a mapper driving actions with the given bindings
func NewMapper(actions *selection.Actions, cfg config.KeyboardConfig) *Mapper {
	return &Mapper{
		actions: actions,
		config:  cfg,
	}
}

// Config returns the active bindings
func (m *Mapper) Config() config.KeyboardConfig {
	return m.config
}

// SetConfig swaps the active bindings, e.g. after a config reload
func (m *Mapper) SetConfig(cfg config.KeyboardConfig) {
	m.config = cfg
}

// Parse maps ev using the current edit mode
func (m *Mapper) Parse(ev KeyboardEvent) Action {
	return ParseKeyboardEvent(ev, m.config, m.actions.Store().Focus().IsEditing)
}

// Execute runs the selection action matching a
func (m *Mapper) Execute(a Action) error {
	switch a.(type) {
	case FocusNextAction:
		return m.actions.FocusNext()
	case FocusPrevAction:
		return m.actions.FocusPrev()
	case FocusFirstAction:
		return m.actions.FocusDirection(selection.DirectionFirst)
	case FocusLastAction:
		return m.actions.FocusDirection(selection.DirectionLast)
	case ExtendSelectionDownAction:
		return m.actions.ExtendSelectionDown()
	case ExtendSelectionUpAction:
		return m.actions.ExtendSelectionUp()
	case EnterEditModeAction:
		return m.actions.EnterEditMode()
	case ExitEditModeAction:
		return m.actions.ExitEditMode()
	case ClearSelectionAction:
		return m.actions.ClearSelection()
	case SelectAllAction:
		return m.actions.SelectAll()
	case SelectFocusedAction:
		return m.actions.SelectFocused()
	case ToggleFocusedAction:
		return m.actions.ToggleFocused()
	default:
		return fmt.Errorf("unsupported keyboard action %T", a)
	}
}

// Handle parses and executes ev. A recognised event always has its default
// prevented, even when the action then fails; err reports that failure.
func (m *Mapper) Handle(ev KeyboardEvent) (handled bool, err error) {
	a := m.Parse(ev)
	if a == nil {
		return false, nil
	}
	ev.PreventDefault()
	return true, m.Execute(a)
}

// HandleKeyboardEvent is Handle without the action error
func (m *Mapper) HandleKeyboardEvent(ev KeyboardEvent) bool {
	handled, _ := m.Handle(ev)
	return handled
}

// ShouldHandle reports whether ev maps to an action, without side effects
func (m *Mapper) ShouldHandle(ev KeyboardEvent) bool {
	return m.Parse(ev) != nil
}

// Handler returns a listener bound to this mapper
func (m *Mapper) Handler() func(KeyboardEvent) {
	return func(ev KeyboardEvent) {
		m.HandleKeyboardEvent(ev)
	}
}
