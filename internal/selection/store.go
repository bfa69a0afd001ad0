package selection

import (
	"blockcanvas/internal/domain"
)

// Store owns the selection and focus cells plus the single-selection mirror.
// Only Actions write to it; everything else reads or subscribes.
type Store struct {
	selection     *Cell[MultiSelectionState]
	focus         *Cell[FocusState]
	selectedBlock *Cell[domain.BlockID]
}

// NewStore creates a store with empty selection and no focus
func NewStore() *Store {
	return &Store{
		selection:     NewCell(emptySelection()),
		focus:         NewCell(FocusState{}),
		selectedBlock: NewCell(domain.BlockID("")),
	}
}

// Selection returns a copy of the multi-selection state
func (s *Store) Selection() MultiSelectionState {
	return s.selection.Get().Clone()
}

// Focus returns the focus state
func (s *Store) Focus() FocusState {
	return s.focus.Get()
}

// SelectedBlockID is the legacy single-selection view: the sole selected
// block, or "" when zero or several blocks are selected.
func (s *Store) SelectedBlockID() domain.BlockID {
	return s.selectedBlock.Get()
}

// SubscribeSelection is notified with a copy after every selection write
func (s *Store) SubscribeSelection(fn func(MultiSelectionState)) func() {
	return s.selection.Subscribe(func(st MultiSelectionState) { fn(st.Clone()) })
}

// SubscribeFocus is notified after every focus write
func (s *Store) SubscribeFocus(fn func(FocusState)) func() {
	return s.focus.Subscribe(fn)
}

// SubscribeSelectedBlock is notified when the legacy mirror changes
func (s *Store) SubscribeSelectedBlock(fn func(domain.BlockID)) func() {
	return s.selectedBlock.Subscribe(fn)
}

// Reset empties all three cells, e.g. on document reload
func (s *Store) Reset() {
	s.setSelection(emptySelection())
	s.setFocus(FocusState{})
}

func (s *Store) setSelection(st MultiSelectionState) {
	s.selection.Set(st.Clone())

	var mirror domain.BlockID
	if st.Len() == 1 {
		for id := range st.SelectedIDs {
			mirror = id
		}
	}
	if s.selectedBlock.Get() != mirror {
		s.selectedBlock.Set(mirror)
	}
}

// setFocus writes only on change, reporting whether it did
func (s *Store) setFocus(f FocusState) bool {
	if s.focus.Get() == f {
		return false
	}
	s.focus.Set(f)
	return true
}
