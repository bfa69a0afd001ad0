package selection

import (
	"slices"

	"blockcanvas/internal/domain"
)

// MultiSelectionState holds the set of selected blocks.
// SelectedIDs is empty exactly when AnchorID is empty.
type MultiSelectionState struct {
	SelectedIDs    map[domain.BlockID]struct{}
	AnchorID       domain.BlockID // fixed end of a range selection
	LastSelectedID domain.BlockID // pivot for single-step range extension
}

// FocusState tracks the single focused block. IsEditing implies FocusedID != "".
type FocusState struct {
	FocusedID domain.BlockID
	IsEditing bool
}

func emptySelection() MultiSelectionState {
	return MultiSelectionState{SelectedIDs: make(map[domain.BlockID]struct{})}
}

// Has reports whether id is selected
func (s MultiSelectionState) Has(id domain.BlockID) bool {
	_, ok := s.SelectedIDs[id]
	return ok
}

// Len returns the number of selected blocks
func (s MultiSelectionState) Len() int {
	return len(s.SelectedIDs)
}

// IsEmpty returns true if nothing is selected
func (s MultiSelectionState) IsEmpty() bool {
	return len(s.SelectedIDs) == 0
}

// IDs returns the selected ids sorted lexically, which for generated ids is creation order
func (s MultiSelectionState) IDs() []domain.BlockID {
	ids := make([]domain.BlockID, 0, len(s.SelectedIDs))
	for id := range s.SelectedIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// InOrder returns the selected ids ordered by the given document order.
// Ids missing from order come last, sorted lexically.
func (s MultiSelectionState) InOrder(order []domain.BlockID) []domain.BlockID {
	ids := make([]domain.BlockID, 0, len(s.SelectedIDs))
	seen := make(map[domain.BlockID]bool, len(s.SelectedIDs))
	for _, id := range order {
		if s.Has(id) {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	for _, id := range s.IDs() {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone returns a copy that shares nothing with s
func (s MultiSelectionState) Clone() MultiSelectionState {
	c := MultiSelectionState{
		SelectedIDs:    make(map[domain.BlockID]struct{}, len(s.SelectedIDs)),
		AnchorID:       s.AnchorID,
		LastSelectedID: s.LastSelectedID,
	}
	for id := range s.SelectedIDs {
		c.SelectedIDs[id] = struct{}{}
	}
	return c
}
