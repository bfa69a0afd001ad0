package selection

import (
	"slices"

	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
	"blockcanvas/internal/eventbus"
)

// Actions are the state transitions of the selection and focus machine.
// Every action validates its preconditions before writing, so a failed
// action leaves the store untouched.
type Actions struct {
	store *Store
	doc   document.OrderProvider
	bus   eventbus.EventBus
}

// NewActions binds actions to a store and a document. bus may be nil.
func NewActions(store *Store, doc document.OrderProvider, bus eventbus.EventBus) *Actions {
	return &Actions{
		store: store,
		doc:   doc,
		bus:   bus,
	}
}

// Store returns the store the actions write to
func (a *Actions) Store() *Store {
	return a.store
}

// Reset clears selection, focus and the mirror
func (a *Actions) Reset() {
	a.store.Reset()
	a.publishSelection(a.store.Selection())
	a.publishFocus(a.store.Focus())
}

func (a *Actions) commitSelection(st MultiSelectionState) {
	a.store.setSelection(st)
	a.publishSelection(st)
}

func (a *Actions) commitFocus(f FocusState) {
	if a.store.setFocus(f) {
		a.publishFocus(f)
	}
}

func (a *Actions) publishSelection(st MultiSelectionState) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(eventbus.SelectionChangedEvent{
		Selected: st.InOrder(a.doc.DocumentOrder()),
		Anchor:   st.AnchorID,
		Last:     st.LastSelectedID,
	})
}

func (a *Actions) publishFocus(f FocusState) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(eventbus.FocusChangedEvent{Focused: f.FocusedID, IsEditing: f.IsEditing})
}

// SelectBlock makes id the only selected block, the anchor, and the focus
func (a *Actions) SelectBlock(id domain.BlockID) error {
	if !a.doc.BlockExists(id) {
		return blockNotFound(id)
	}

	st := emptySelection()
	st.SelectedIDs[id] = struct{}{}
	st.AnchorID = id
	st.LastSelectedID = id
	a.commitSelection(st)
	a.commitFocus(FocusState{FocusedID: id})
	return nil
}

// DeselectBlock removes id from the selection. Deselecting an unselected
// id succeeds without change; the id does not have to exist.
// LastSelectedID is kept so the next extend still pivots on id.
func (a *Actions) DeselectBlock(id domain.BlockID) error {
	st := a.store.Selection()
	if !st.Has(id) {
		return nil
	}

	delete(st.SelectedIDs, id)
	if st.IsEmpty() {
		st.AnchorID = ""
		st.LastSelectedID = ""
	} else if st.AnchorID == id {
		st.AnchorID = a.nextAnchor(st)
	}
	a.commitSelection(st)
	return nil
}

// nextAnchor picks the replacement anchor from a non-empty selection:
// the last selected block if still selected, else the earliest in document order.
func (a *Actions) nextAnchor(st MultiSelectionState) domain.BlockID {
	if st.LastSelectedID != "" && st.Has(st.LastSelectedID) {
		return st.LastSelectedID
	}
	return st.InOrder(a.doc.DocumentOrder())[0]
}

// ToggleSelection adds id to the selection, or removes it if already selected.
// Adding keeps an existing anchor.
func (a *Actions) ToggleSelection(id domain.BlockID) error {
	if !a.doc.BlockExists(id) {
		return blockNotFound(id)
	}

	st := a.store.Selection()
	if st.Has(id) {
		return a.DeselectBlock(id)
	}

	st.SelectedIDs[id] = struct{}{}
	st.LastSelectedID = id
	if st.AnchorID == "" {
		st.AnchorID = id
	}
	a.commitSelection(st)
	return nil
}

// SelectRange replaces the selection with every block between the anchor
// and target inclusive, in either direction. Without a live anchor it
// behaves like SelectBlock.
func (a *Actions) SelectRange(target domain.BlockID) error {
	if !a.doc.BlockExists(target) {
		return blockNotFound(target)
	}

	st := a.store.Selection()
	if st.AnchorID == "" {
		return a.SelectBlock(target)
	}

	order := a.doc.DocumentOrder()
	from := slices.Index(order, st.AnchorID)
	to := slices.Index(order, target)
	if from < 0 {
		// anchor was deleted from the document
		return a.SelectBlock(target)
	}
	if from > to {
		from, to = to, from
	}

	next := emptySelection()
	for _, id := range order[from : to+1] {
		next.SelectedIDs[id] = struct{}{}
	}
	next.AnchorID = st.AnchorID
	next.LastSelectedID = target
	a.commitSelection(next)
	return nil
}

// ClearSelection empties the selection and leaves edit mode. Focus stays.
func (a *Actions) ClearSelection() error {
	a.commitSelection(emptySelection())
	f := a.store.Focus()
	f.IsEditing = false
	a.commitFocus(f)
	return nil
}

// SelectAll selects every block, anchored at the first
func (a *Actions) SelectAll() error {
	order := a.doc.DocumentOrder()
	if len(order) == 0 {
		return noBlocks()
	}

	st := emptySelection()
	for _, id := range order {
		st.SelectedIDs[id] = struct{}{}
	}
	st.AnchorID = order[0]
	st.LastSelectedID = order[len(order)-1]
	a.commitSelection(st)
	return nil
}

// SelectFocused selects the focused block
func (a *Actions) SelectFocused() error {
	f := a.store.Focus()
	if f.FocusedID == "" {
		return noFocus()
	}
	return a.SelectBlock(f.FocusedID)
}

// ToggleFocused toggles the focused block in the selection
func (a *Actions) ToggleFocused() error {
	f := a.store.Focus()
	if f.FocusedID == "" {
		return noFocus()
	}
	return a.ToggleSelection(f.FocusedID)
}

// ExtendSelectionDown grows or shrinks the range by one block after the last selected
func (a *Actions) ExtendSelectionDown() error {
	return a.extendSelection(document.Next)
}

// ExtendSelectionUp grows or shrinks the range by one block before the last selected
func (a *Actions) ExtendSelectionUp() error {
	return a.extendSelection(document.Prev)
}

func (a *Actions) extendSelection(dir document.Direction) error {
	last := a.store.Selection().LastSelectedID
	if last == "" {
		return nil
	}
	next, ok := a.doc.Neighbor(last, dir)
	if !ok {
		return nil
	}
	return a.SelectRange(next)
}
