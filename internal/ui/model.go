package ui

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blockcanvas/internal/config"
	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
	"blockcanvas/internal/eventbus"
	"blockcanvas/internal/keyboard"
	"blockcanvas/internal/selection"
	"blockcanvas/internal/ui/views"
)

// Canvas rows start below the title line and a blank line
const headerHeight = 2

// Model represents the UI state
type Model struct {
	config  *config.Config
	doc     *document.MemoryStore
	actions *selection.Actions
	mapper  *keyboard.Mapper

	width       int
	height      int
	offset      int // first visible row
	keys        KeyMap
	help        help.Model
	editor      textinput.Model
	editingID   domain.BlockID // block bound to editor, "" when not editing
	inPagerMode bool           // tracks if we're currently in pager mode

	lastErr error
	message string

	styles      *views.Styles
	renderer    *views.CanvasRenderer
	outline     *OutlinePager
	unsubscribe func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over doc and the selection actions bound to it
func NewModel(cfg *config.Config, doc *document.MemoryStore, actions *selection.Actions) *Model {
	styles := views.NewStyles()

	editor := textinput.New()
	editor.Prompt = ""
	editor.Placeholder = "type here"

	m := &Model{
		config:   cfg,
		doc:      doc,
		actions:  actions,
		mapper:   keyboard.NewMapper(actions, cfg.Keyboard),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		editor:   editor,
		styles:   styles,
		renderer: views.NewCanvasRenderer(styles, cfg.UISettings.ShowBlockIDs, cfg.UISettings.IndentWidth),
		outline:  NewOutlinePager(nil),
	}

	m.unsubscribe = actions.Store().SubscribeFocus(m.syncEditor)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.outline.SetProgram(p)
}

// Close detaches the model from the selection store
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.editor.Width = max(msg.Width-12, 10)
		m.ensureFocusVisible()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case EventMsg:
		m.handleEvent(msg.Event)

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case outlinePagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Printf("Outline pager failed: %v", msg.err)
			m.lastErr = msg.err
		}

	default:
		if m.editingID != "" {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// handleKey runs the keyboard mapper first; keys it leaves alone go to the
// editor while editing, or to the host bindings otherwise.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inPagerMode {
		return m, nil
	}

	handled, err := m.mapper.Handle(keyboard.FromKeyMsg(msg))
	if handled {
		m.record(err)
		m.ensureFocusVisible()
		return m, nil
	}

	if m.editingID != "" {
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Outline):
		return m, m.openOutline()
	case key.Matches(msg, m.keys.NewBlock):
		m.record(m.newBlock())
	case key.Matches(msg, m.keys.DeleteBlock):
		m.record(m.deleteFocused())
	case key.Matches(msg, m.keys.Save):
		m.record(m.save())
	case key.Matches(msg, m.keys.Reload):
		m.record(m.reload())
	}

	m.ensureFocusVisible()
	return m, nil
}

// handleMouse maps clicks on a block row to selection actions
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.inPagerMode || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	id, ok := m.blockAt(msg.Y)
	if !ok {
		return
	}

	switch {
	case msg.Shift:
		m.record(m.actions.SelectRange(id))
	case msg.Ctrl, msg.Alt:
		m.record(m.actions.ToggleSelection(id))
	default:
		m.record(m.actions.SelectBlock(id))
	}
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ConfigChangedEvent:
		cfg, ok := ev.Config.(*config.Config)
		if !ok {
			return
		}
		m.applyConfig(cfg)
		m.message = "config reloaded"

	case eventbus.ErrorEvent:
		if ev.Err != nil {
			m.lastErr = fmt.Errorf("%s: %w", ev.Message, ev.Err)
		}
	}
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.config.Keyboard = cfg.Keyboard
	m.config.UISettings = cfg.UISettings
	m.mapper.SetConfig(cfg.Keyboard)
	m.renderer.SetOptions(cfg.UISettings.ShowBlockIDs, cfg.UISettings.IndentWidth)
}

// syncEditor binds the text input to the block entering edit mode and
// writes the text back when edit mode ends.
func (m *Model) syncEditor(f selection.FocusState) {
	switch {
	case f.IsEditing && f.FocusedID != m.editingID:
		m.commitEdit()
		m.beginEdit(f.FocusedID)
	case !f.IsEditing && m.editingID != "":
		m.commitEdit()
	}
}

func (m *Model) beginEdit(id domain.BlockID) {
	text := ""
	if b, ok := m.doc.Block(id); ok {
		text = b.Text()
	}
	m.editingID = id
	m.editor.SetValue(text)
	m.editor.CursorEnd()
	m.editor.Focus()
}

func (m *Model) commitEdit() {
	if m.editingID == "" {
		return
	}
	id := m.editingID
	m.editingID = ""
	m.editor.Blur()

	b, ok := m.doc.Block(id)
	if !ok {
		log.Printf("Dropping edit for removed block %s", id)
		return
	}
	if b.Text() == m.editor.Value() {
		return
	}
	if err := m.doc.UpdateProps(id, map[string]any{"text": m.editor.Value()}); err != nil {
		log.Printf("Failed to save block text: %v", err)
		m.lastErr = err
	}
}

// newBlock inserts an empty paragraph after the focused block and starts editing it
func (m *Model) newBlock() error {
	block := &domain.Block{Type: "paragraph"}

	var id domain.BlockID
	var err error
	if focused := m.actions.Store().Focus().FocusedID; focused != "" && m.doc.BlockExists(focused) {
		id, err = m.doc.InsertAfter(focused, block)
	} else {
		id, err = m.doc.AppendBlock("", block)
	}
	if err != nil {
		return err
	}

	if err := m.actions.FocusBlock(id); err != nil {
		return err
	}
	return m.actions.EnterEditMode()
}

// deleteFocused removes the focused block's subtree and moves focus to the
// block before it
func (m *Model) deleteFocused() error {
	id := m.actions.Store().Focus().FocusedID
	if id == "" {
		return nil
	}

	prev, hasPrev := m.doc.Neighbor(id, document.Prev)
	removed, err := m.doc.RemoveBlock(id)
	if err != nil {
		return err
	}
	for _, r := range removed {
		_ = m.actions.DeselectBlock(r)
	}
	m.message = fmt.Sprintf("deleted %d block(s)", len(removed))

	if hasPrev {
		return m.actions.FocusBlock(prev)
	}
	if err := m.actions.FocusNext(); err != nil {
		if errors.Is(err, selection.ErrNoBlocksAvailable) {
			return m.actions.ClearFocus()
		}
		return err
	}
	return nil
}

func (m *Model) save() error {
	path := m.config.DocumentPath
	if path == "" {
		return fmt.Errorf("no document path configured")
	}
	if err := m.doc.SaveFile(path); err != nil {
		return err
	}
	m.message = "saved " + path
	return nil
}

// reload replaces the document with the file on disk; selection and focus
// refer to the old tree so they start over.
func (m *Model) reload() error {
	path := m.config.DocumentPath
	if path == "" {
		return fmt.Errorf("no document path configured")
	}
	if err := m.doc.LoadFile(path); err != nil {
		return err
	}
	m.editingID = ""
	m.editor.Blur()
	m.actions.Reset()
	m.offset = 0
	m.message = "reloaded " + path
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.commitEdit()
	return tea.Quit
}

// openOutline returns a command that shows the outline using ov pager
func (m *Model) openOutline() tea.Cmd {
	content := m.renderer.RenderOutline(m.doc.Outline())
	return func() tea.Msg {
		if m.program != nil {
			m.program.Send(pauseRenderingMsg{})
		}

		err := m.outline.Show(content)

		if m.program != nil {
			m.program.Send(resumeRenderingMsg{})
		}
		return outlinePagerMsg{err: err}
	}
}

// record keeps err for the status bar and logs it
func (m *Model) record(err error) {
	if err == nil {
		m.lastErr = nil
		return
	}
	log.Printf("Action failed: %v", err)
	m.lastErr = err
	m.message = ""
}

// canvasHeight is the number of block rows that fit, 0 when unknown
func (m *Model) canvasHeight() int {
	if m.height == 0 {
		return 0
	}
	// blank + status line above the help
	footer := 2 + lipgloss.Height(m.help.View(m.keys))
	return max(m.height-headerHeight-footer, 1)
}

func (m *Model) ensureFocusVisible() {
	h := m.canvasHeight()
	if h == 0 {
		return
	}
	order := m.doc.DocumentOrder()
	if m.offset > max(len(order)-h, 0) {
		m.offset = max(len(order)-h, 0)
	}

	i := slices.Index(order, m.actions.Store().Focus().FocusedID)
	if i < 0 {
		return
	}
	if i < m.offset {
		m.offset = i
	} else if i >= m.offset+h {
		m.offset = i - h + 1
	}
}

// blockAt returns the block rendered on screen line y
func (m *Model) blockAt(y int) (domain.BlockID, bool) {
	line := y - headerHeight
	if line < 0 {
		return "", false
	}
	if h := m.canvasHeight(); h > 0 && line >= h {
		return "", false
	}
	order := m.doc.DocumentOrder()
	row := m.offset + line
	if row >= len(order) {
		return "", false
	}
	return order[row], true
}

func (m *Model) rows() []views.RowState {
	sel := m.actions.Store().Selection()
	focus := m.actions.Store().Focus()

	entries := m.doc.Outline()
	rows := make([]views.RowState, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, views.RowState{
			Entry:    e,
			Focused:  e.ID == focus.FocusedID,
			Selected: sel.Has(e.ID),
			Anchor:   e.ID == sel.AnchorID,
			Editing:  focus.IsEditing && e.ID == focus.FocusedID,
		})
	}
	return rows
}

func (m *Model) status() views.StatusInfo {
	store := m.actions.Store()
	focus := store.Focus()
	info := views.StatusInfo{
		Total:    m.doc.Len(),
		Selected: store.Selection().Len(),
		Mirror:   store.SelectedBlockID(),
		Focused:  focus.FocusedID,
		Editing:  focus.IsEditing,
		Message:  m.message,
	}
	if m.lastErr != nil {
		info.ErrCode = string(selection.CodeOf(m.lastErr))
		if info.ErrCode == "" {
			info.ErrCode = m.lastErr.Error()
		}
	}
	return info
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("blockcanvas"))
	if m.config.DocumentPath != "" {
		b.WriteString(" " + m.styles.Dim.Render(m.config.DocumentPath))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderer.RenderCanvas(m.rows(), m.offset, m.canvasHeight(), m.width, m.editor.View()))
	b.WriteString("\n\n")
	b.WriteString(m.renderer.RenderStatus(m.status()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}
