package selection

import (
	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
)

// Direction represents focus movement
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionFirst Direction = "first"
	DirectionLast  Direction = "last"
)

// FocusBlock focuses id without touching the selection
func (a *Actions) FocusBlock(id domain.BlockID) error {
	if !a.doc.BlockExists(id) {
		return blockNotFound(id)
	}
	a.commitFocus(FocusState{FocusedID: id})
	return nil
}

// FocusNext moves focus one block down in document order
func (a *Actions) FocusNext() error {
	return a.step(document.Next)
}

// FocusPrev moves focus one block up in document order
func (a *Actions) FocusPrev() error {
	return a.step(document.Prev)
}

// FocusDirection dispatches up/down to FocusPrev/FocusNext and first/last to a jump
func (a *Actions) FocusDirection(dir Direction) error {
	switch dir {
	case DirectionUp:
		return a.FocusPrev()
	case DirectionDown:
		return a.FocusNext()
	case DirectionFirst:
		return a.jump(document.Prev)
	case DirectionLast:
		return a.jump(document.Next)
	default:
		return unknownDirection(dir)
	}
}

// step moves to the neighbor; at a boundary it succeeds without change.
// With no live focus it starts from the document edge.
func (a *Actions) step(dir document.Direction) error {
	f := a.store.Focus()
	if f.IsEditing {
		return alreadyEditing()
	}
	edge, ok := a.edge(dir)
	if !ok {
		return noBlocks()
	}

	if f.FocusedID == "" || !a.doc.BlockExists(f.FocusedID) {
		a.commitFocus(FocusState{FocusedID: edge})
		return nil
	}

	next, ok := a.doc.Neighbor(f.FocusedID, dir)
	if !ok {
		return nil
	}
	a.commitFocus(FocusState{FocusedID: next})
	return nil
}

// jump focuses the first (Prev) or last (Next) block
func (a *Actions) jump(dir document.Direction) error {
	if a.store.Focus().IsEditing {
		return alreadyEditing()
	}
	target, ok := a.farEdge(dir)
	if !ok {
		return noBlocks()
	}
	a.commitFocus(FocusState{FocusedID: target})
	return nil
}

// edge is where stepping in dir starts from when nothing is focused
func (a *Actions) edge(dir document.Direction) (domain.BlockID, bool) {
	if dir == document.Next {
		return a.doc.First()
	}
	return a.doc.Last()
}

// farEdge is the block at the end of the document in dir
func (a *Actions) farEdge(dir document.Direction) (domain.BlockID, bool) {
	if dir == document.Next {
		return a.doc.Last()
	}
	return a.doc.First()
}

// EnterEditMode starts editing the focused block. Calling it while already
// editing succeeds without change.
func (a *Actions) EnterEditMode() error {
	f := a.store.Focus()
	if f.FocusedID == "" {
		return noFocus()
	}
	if f.IsEditing {
		return nil
	}
	if !a.doc.BlockExists(f.FocusedID) {
		return blockNotFound(f.FocusedID)
	}
	a.commitFocus(FocusState{FocusedID: f.FocusedID, IsEditing: true})
	return nil
}

// ExitEditMode leaves edit mode and keeps focus
func (a *Actions) ExitEditMode() error {
	f := a.store.Focus()
	f.IsEditing = false
	a.commitFocus(f)
	return nil
}

// ClearFocus drops focus and edit mode
func (a *Actions) ClearFocus() error {
	a.commitFocus(FocusState{})
	return nil
}

// Escape unwinds one layer per call: edit mode, then selection, then focus.
func (a *Actions) Escape() error {
	f := a.store.Focus()
	switch {
	case f.IsEditing:
		return a.ExitEditMode()
	case !a.store.Selection().IsEmpty():
		return a.ClearSelection()
	case f.FocusedID != "":
		return a.ClearFocus()
	default:
		return nil
	}
}
