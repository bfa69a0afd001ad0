package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Focus         lipgloss.Style
	Selected      lipgloss.Style
	Anchor        lipgloss.Style
	Editing       lipgloss.Style
	BlockType     lipgloss.Style
	BlockID       lipgloss.Style
	Empty         lipgloss.Style
	Scroll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:          lipgloss.NewStyle().Faint(true),
		Focus:         lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Anchor:        lipgloss.NewStyle().Underline(true),
		Editing:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		BlockType:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		BlockID:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// BlockTypeIcon returns the gutter glyph for a block type
func BlockTypeIcon(blockType string) string {
	switch blockType {
	case "heading":
		return "#"
	case "list", "item":
		return "-"
	case "quote":
		return "|"
	case "code":
		return "`"
	default:
		return " "
	}
}
