package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
)

// Row markers
const (
	MarkerFocus    = ">"
	MarkerSelected = "●"
	MarkerEditing  = "✎"
)

// RowState is one outline entry plus its selection and focus flags
type RowState struct {
	Entry    document.OutlineEntry
	Focused  bool
	Selected bool
	Anchor   bool
	Editing  bool
}

// StatusInfo feeds the status bar
type StatusInfo struct {
	Total    int
	Selected int
	Mirror   domain.BlockID
	Focused  domain.BlockID
	Editing  bool
	ErrCode  string
	Message  string
}

// CanvasRenderer draws the block canvas
type CanvasRenderer struct {
	styles      *Styles
	showIDs     bool
	indentWidth int
}

// NewCanvasRenderer creates a new canvas renderer
func NewCanvasRenderer(styles *Styles, showIDs bool, indentWidth int) *CanvasRenderer {
	r := &CanvasRenderer{styles: styles}
	r.SetOptions(showIDs, indentWidth)
	return r
}

// SetOptions updates the display settings
func (r *CanvasRenderer) SetOptions(showIDs bool, indentWidth int) {
	if indentWidth <= 0 {
		indentWidth = 2
	}
	r.showIDs = showIDs
	r.indentWidth = indentWidth
}

// RenderBlock renders a single block line. editorView replaces the text while editing.
func (r *CanvasRenderer) RenderBlock(row RowState, editorView string) string {
	var parts []string

	if row.Entry.Depth > 0 {
		parts = append(parts, strings.Repeat(" ", row.Entry.Depth*r.indentWidth))
	}

	focusMarker := " "
	if row.Focused {
		focusMarker = r.styles.Focus.Render(MarkerFocus)
	}
	parts = append(parts, focusMarker, " ")

	switch {
	case row.Editing:
		parts = append(parts, r.styles.Editing.Render(MarkerEditing))
	case row.Selected:
		parts = append(parts, r.styles.Selected.Render(MarkerSelected))
	default:
		parts = append(parts, " ")
	}
	parts = append(parts, " ", r.styles.BlockType.Render(BlockTypeIcon(row.Entry.Type)), " ")

	if row.Editing {
		parts = append(parts, editorView)
		return strings.Join(parts, "")
	}

	text := row.Entry.Text
	if text == "" {
		text = r.styles.Empty.Render("(empty " + row.Entry.Type + ")")
	}
	textStyle := lipgloss.NewStyle()
	if row.Selected {
		textStyle = textStyle.Inherit(r.styles.SelectionBg)
	}
	if row.Anchor {
		textStyle = textStyle.Inherit(r.styles.Anchor)
	}
	parts = append(parts, textStyle.Render(text))

	if r.showIDs {
		parts = append(parts, " ", r.styles.BlockID.Render(string(row.Entry.ID)))
	}

	return strings.Join(parts, "")
}

// RenderCanvas renders the visible window of rows starting at offset
func (r *CanvasRenderer) RenderCanvas(rows []RowState, offset, height, width int, editorView string) string {
	if len(rows) == 0 {
		return r.styles.Empty.Render("Empty document. Press n to add a block.")
	}

	if offset < 0 || offset >= len(rows) {
		offset = 0
	}
	end := len(rows)
	if height > 0 && offset+height < end {
		end = offset + height
	}

	lineStyle := lipgloss.NewStyle()
	if width > 0 {
		lineStyle = lineStyle.MaxWidth(width)
	}

	lines := make([]string, 0, end-offset)
	for _, row := range rows[offset:end] {
		lines = append(lines, lineStyle.Render(r.RenderBlock(row, editorView)))
	}
	return strings.Join(lines, "\n")
}

// RenderStatus renders the status bar
func (r *CanvasRenderer) RenderStatus(info StatusInfo) string {
	parts := []string{fmt.Sprintf("%d blocks", info.Total)}

	parts = append(parts, fmt.Sprintf("%d selected", info.Selected))
	if info.Mirror != "" {
		parts = append(parts, "block: "+shortID(info.Mirror))
	}
	if info.Focused != "" {
		focus := "focus: " + shortID(info.Focused)
		if info.Editing {
			focus += " (editing)"
		}
		parts = append(parts, focus)
	}

	status := r.styles.Status.Render(strings.Join(parts, " · "))
	switch {
	case info.ErrCode != "":
		status += "  " + r.styles.StatusError.Render(info.ErrCode)
	case info.Message != "":
		status += "  " + r.styles.StatusSuccess.Render(info.Message)
	}
	return status
}

// RenderOutline renders the whole document as plain indented text for the pager
func (r *CanvasRenderer) RenderOutline(entries []document.OutlineEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.Repeat(" ", e.Depth*r.indentWidth))
		b.WriteString(BlockTypeIcon(e.Type))
		b.WriteString(" ")
		text := e.Text
		if text == "" {
			text = "(empty " + e.Type + ")"
		}
		b.WriteString(text)
		if r.showIDs {
			b.WriteString("  [" + string(e.ID) + "]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shortID(id domain.BlockID) string {
	s := string(id)
	if len(s) > 8 {
		return s[len(s)-8:]
	}
	return s
}
