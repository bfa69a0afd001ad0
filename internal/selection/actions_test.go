package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
)

const (
	b1 domain.BlockID = "B1"
	b2 domain.BlockID = "B2"
	b3 domain.BlockID = "B3"
)

// setup returns actions over a flat document [B1, B2, B3]
func setup(t *testing.T) (*Actions, *document.MemoryStore) {
	t.Helper()
	doc := document.NewMemoryStore(nil)
	for _, id := range []domain.BlockID{b1, b2, b3} {
		_, err := doc.AppendBlock("", &domain.Block{ID: id, Type: "paragraph"})
		require.NoError(t, err)
	}
	return NewActions(NewStore(), doc, nil), doc
}

func selected(a *Actions) []domain.BlockID {
	return a.Store().Selection().IDs()
}

func requireCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, CodeOf(err))
}

// checkMirror asserts the legacy mirror agrees with the selection
func checkMirror(t *testing.T, a *Actions) {
	t.Helper()
	st := a.Store().Selection()
	mirror := a.Store().SelectedBlockID()
	assert.Equal(t, st.Len() == 1, mirror != "", "mirror set iff exactly one block selected")
	if mirror != "" {
		assert.True(t, st.Has(mirror))
	}
	assert.Equal(t, st.IsEmpty(), st.AnchorID == "", "anchor empty iff selection empty")
}

func TestSelectBlock(t *testing.T) {
	a, _ := setup(t)

	require.NoError(t, a.SelectBlock(b2))
	st := a.Store().Selection()
	assert.Equal(t, []domain.BlockID{b2}, st.IDs())
	assert.Equal(t, b2, st.AnchorID)
	assert.Equal(t, b2, st.LastSelectedID)
	assert.Equal(t, FocusState{FocusedID: b2}, a.Store().Focus())
	assert.Equal(t, b2, a.Store().SelectedBlockID())

	requireCode(t, a.SelectBlock("nope"), CodeBlockNotFound)
	assert.Equal(t, []domain.BlockID{b2}, selected(a), "failed action must not mutate")
}

func TestDeselectBlock(t *testing.T) {
	a, _ := setup(t)

	t.Run("unselected id is a no-op", func(t *testing.T) {
		require.NoError(t, a.DeselectBlock("ghost"))
		assert.Empty(t, selected(a))
	})

	t.Run("removing the anchor reassigns it", func(t *testing.T) {
		require.NoError(t, a.SelectBlock(b1))
		require.NoError(t, a.ToggleSelection(b3))
		require.NoError(t, a.DeselectBlock(b1))

		st := a.Store().Selection()
		assert.Equal(t, []domain.BlockID{b3}, st.IDs())
		assert.Equal(t, b3, st.AnchorID)
		assert.Equal(t, b3, a.Store().SelectedBlockID())
		checkMirror(t, a)
	})

	t.Run("removing the last id clears everything", func(t *testing.T) {
		require.NoError(t, a.DeselectBlock(b3))
		st := a.Store().Selection()
		assert.True(t, st.IsEmpty())
		assert.Empty(t, st.AnchorID)
		assert.Empty(t, st.LastSelectedID)
		assert.Empty(t, a.Store().SelectedBlockID())
	})

	t.Run("anchor falls back to document order when last selected is gone", func(t *testing.T) {
		require.NoError(t, a.SelectBlock(b3))
		require.NoError(t, a.ToggleSelection(b2))
		require.NoError(t, a.ToggleSelection(b1))
		require.NoError(t, a.DeselectBlock(b1)) // last selected leaves
		require.NoError(t, a.DeselectBlock(b3)) // anchor leaves

		st := a.Store().Selection()
		assert.Equal(t, b2, st.AnchorID)
		assert.Equal(t, b1, st.LastSelectedID, "deselect keeps the pivot")
	})

	t.Run("extend after deselect pivots on the deselected block", func(t *testing.T) {
		require.NoError(t, a.SelectBlock(b1))
		require.NoError(t, a.ToggleSelection(b2))
		require.NoError(t, a.ToggleSelection(b2))

		st := a.Store().Selection()
		assert.Equal(t, []domain.BlockID{b1}, st.IDs())
		assert.Equal(t, b1, st.AnchorID)
		assert.Equal(t, b2, st.LastSelectedID)

		require.NoError(t, a.ExtendSelectionDown())
		assert.Equal(t, []domain.BlockID{b1, b2, b3}, selected(a))
		assert.Equal(t, b3, a.Store().Selection().LastSelectedID)
	})
}

func TestToggleSelection(t *testing.T) {
	a, _ := setup(t)

	require.NoError(t, a.ToggleSelection(b2))
	st := a.Store().Selection()
	assert.Equal(t, b2, st.AnchorID, "first toggle sets the anchor")

	require.NoError(t, a.ToggleSelection(b3))
	st = a.Store().Selection()
	assert.Equal(t, []domain.BlockID{b2, b3}, st.IDs())
	assert.Equal(t, b2, st.AnchorID, "existing anchor is kept")
	assert.Equal(t, b3, st.LastSelectedID)
	assert.Empty(t, a.Store().SelectedBlockID())
	assert.Empty(t, a.Store().Focus().FocusedID, "toggle does not focus")

	require.NoError(t, a.ToggleSelection(b3))
	assert.Equal(t, []domain.BlockID{b2}, selected(a))
	checkMirror(t, a)

	requireCode(t, a.ToggleSelection("nope"), CodeBlockNotFound)
}

func TestSelectRangeIsOrderIndependent(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectBlock(b1))
	require.NoError(t, a.SelectRange(b3))
	forward := selected(a)

	a.Reset()
	require.NoError(t, a.SelectBlock(b3))
	require.NoError(t, a.SelectRange(b1))
	backward := selected(a)

	assert.Equal(t, []domain.BlockID{b1, b2, b3}, forward)
	assert.Equal(t, forward, backward)
	assert.Equal(t, b3, a.Store().Selection().AnchorID)
	assert.Equal(t, b1, a.Store().Selection().LastSelectedID)
}

func TestSelectRangeWithoutAnchorSelectsBlock(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectRange(b2))

	st := a.Store().Selection()
	assert.Equal(t, []domain.BlockID{b2}, st.IDs())
	assert.Equal(t, b2, st.AnchorID)
	assert.Equal(t, b2, a.Store().Focus().FocusedID)

	requireCode(t, a.SelectRange("nope"), CodeBlockNotFound)
}

func TestSelectRangeOverNestedBlocks(t *testing.T) {
	doc := document.NewMemoryStore(nil)
	_, err := doc.AppendBlock("", &domain.Block{ID: "p", Children: []*domain.Block{{ID: "c1"}, {ID: "c2"}}})
	require.NoError(t, err)
	_, err = doc.AppendBlock("", &domain.Block{ID: "q"})
	require.NoError(t, err)
	a := NewActions(NewStore(), doc, nil)

	require.NoError(t, a.SelectBlock("c2"))
	require.NoError(t, a.SelectRange("p"))
	assert.Equal(t, []domain.BlockID{"p", "c1", "c2"}, a.Store().Selection().InOrder(doc.DocumentOrder()))
}

func TestSelectRangeWithDeletedAnchor(t *testing.T) {
	a, doc := setup(t)
	require.NoError(t, a.SelectBlock(b1))
	_, err := doc.RemoveBlock(b1)
	require.NoError(t, err)

	require.NoError(t, a.SelectRange(b3))
	st := a.Store().Selection()
	assert.Equal(t, []domain.BlockID{b3}, st.IDs())
	assert.Equal(t, b3, st.AnchorID)
}

func TestClearSelectionKeepsFocus(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectBlock(b2))
	require.NoError(t, a.EnterEditMode())

	require.NoError(t, a.ClearSelection())
	assert.True(t, a.Store().Selection().IsEmpty())
	assert.Empty(t, a.Store().SelectedBlockID())
	assert.Equal(t, FocusState{FocusedID: b2}, a.Store().Focus())
}

func TestSelectAll(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectAll())

	st := a.Store().Selection()
	assert.Equal(t, []domain.BlockID{b1, b2, b3}, st.IDs())
	assert.Equal(t, b1, st.AnchorID)
	assert.Equal(t, b3, st.LastSelectedID)
	checkMirror(t, a)
}

func TestEmptyDocument(t *testing.T) {
	a := NewActions(NewStore(), document.NewMemoryStore(nil), nil)

	requireCode(t, a.SelectAll(), CodeNoBlocksAvailable)
	requireCode(t, a.FocusNext(), CodeNoBlocksAvailable)
	requireCode(t, a.FocusPrev(), CodeNoBlocksAvailable)
	requireCode(t, a.FocusDirection(DirectionFirst), CodeNoBlocksAvailable)
	assert.True(t, errors.Is(a.SelectAll(), ErrNoBlocksAvailable))
}

func TestFocusBlockLeavesSelection(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectBlock(b1))
	require.NoError(t, a.FocusBlock(b3))

	assert.Equal(t, []domain.BlockID{b1}, selected(a))
	assert.Equal(t, FocusState{FocusedID: b3}, a.Store().Focus())
	requireCode(t, a.FocusBlock("nope"), CodeBlockNotFound)
}

func TestFocusNavigation(t *testing.T) {
	a, _ := setup(t)

	require.NoError(t, a.FocusNext())
	assert.Equal(t, b1, a.Store().Focus().FocusedID, "focusNext starts at first")
	require.NoError(t, a.FocusNext())
	require.NoError(t, a.FocusNext())
	assert.Equal(t, b3, a.Store().Focus().FocusedID)

	require.NoError(t, a.FocusNext(), "boundary is not an error")
	assert.Equal(t, b3, a.Store().Focus().FocusedID)

	require.NoError(t, a.ClearFocus())
	require.NoError(t, a.FocusPrev())
	assert.Equal(t, b3, a.Store().Focus().FocusedID, "focusPrev starts at last")

	require.NoError(t, a.FocusDirection(DirectionFirst))
	assert.Equal(t, b1, a.Store().Focus().FocusedID)
	require.NoError(t, a.FocusPrev())
	assert.Equal(t, b1, a.Store().Focus().FocusedID)

	require.NoError(t, a.FocusDirection(DirectionDown))
	assert.Equal(t, b2, a.Store().Focus().FocusedID)
	require.NoError(t, a.FocusDirection(DirectionUp))
	assert.Equal(t, b1, a.Store().Focus().FocusedID)
	require.NoError(t, a.FocusDirection(DirectionLast))
	assert.Equal(t, b3, a.Store().Focus().FocusedID)

	requireCode(t, a.FocusDirection("sideways"), CodeBlockNotFound)
}

func TestFocusNavigationBlockedWhileEditing(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.FocusBlock(b2))
	require.NoError(t, a.EnterEditMode())

	requireCode(t, a.FocusNext(), CodeAlreadyEditing)
	requireCode(t, a.FocusPrev(), CodeAlreadyEditing)
	requireCode(t, a.FocusDirection(DirectionLast), CodeAlreadyEditing)
	assert.Equal(t, FocusState{FocusedID: b2, IsEditing: true}, a.Store().Focus())
}

func TestFocusNextFromDeletedBlockRestarts(t *testing.T) {
	a, doc := setup(t)
	require.NoError(t, a.FocusBlock(b2))
	_, err := doc.RemoveBlock(b2)
	require.NoError(t, err)

	require.NoError(t, a.FocusNext())
	assert.Equal(t, b1, a.Store().Focus().FocusedID)
}

func TestSelectAndToggleFocused(t *testing.T) {
	a, _ := setup(t)
	requireCode(t, a.SelectFocused(), CodeNoBlocksAvailable)
	requireCode(t, a.ToggleFocused(), CodeNoBlocksAvailable)

	require.NoError(t, a.FocusBlock(b2))
	require.NoError(t, a.SelectFocused())
	assert.Equal(t, []domain.BlockID{b2}, selected(a))

	require.NoError(t, a.FocusBlock(b3))
	require.NoError(t, a.ToggleFocused())
	assert.Equal(t, []domain.BlockID{b2, b3}, selected(a))
	require.NoError(t, a.ToggleFocused())
	assert.Equal(t, []domain.BlockID{b2}, selected(a))
}

func TestExtendSelection(t *testing.T) {
	a, _ := setup(t)

	require.NoError(t, a.ExtendSelectionDown(), "nothing selected is a no-op")
	assert.Empty(t, selected(a))

	require.NoError(t, a.SelectBlock(b2))
	require.NoError(t, a.ExtendSelectionDown())
	assert.Equal(t, []domain.BlockID{b2, b3}, selected(a))

	require.NoError(t, a.ExtendSelectionDown(), "boundary is a no-op")
	assert.Equal(t, []domain.BlockID{b2, b3}, selected(a))

	require.NoError(t, a.ExtendSelectionUp())
	assert.Equal(t, []domain.BlockID{b2}, selected(a), "moving back shrinks the range")
	require.NoError(t, a.ExtendSelectionUp())
	assert.Equal(t, []domain.BlockID{b1, b2}, selected(a))
	assert.Equal(t, b2, a.Store().Selection().AnchorID)
}

func TestEditMode(t *testing.T) {
	a, _ := setup(t)
	requireCode(t, a.EnterEditMode(), CodeNoBlocksAvailable)

	require.NoError(t, a.FocusBlock(b1))
	require.NoError(t, a.EnterEditMode())
	require.NoError(t, a.EnterEditMode(), "entering twice is fine")
	assert.True(t, a.Store().Focus().IsEditing)

	require.NoError(t, a.ExitEditMode())
	once := a.Store().Focus()
	require.NoError(t, a.ExitEditMode())
	assert.Equal(t, once, a.Store().Focus())
	assert.Equal(t, FocusState{FocusedID: b1}, once)
}

func TestClearFocusIsIdempotent(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.FocusBlock(b1))
	require.NoError(t, a.EnterEditMode())

	require.NoError(t, a.ClearFocus())
	once := a.Store().Focus()
	require.NoError(t, a.ClearFocus())
	assert.Equal(t, once, a.Store().Focus())
	assert.Equal(t, FocusState{}, once)
}

func TestEscapeUnwindsOneLayerPerCall(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectBlock(b2))
	require.NoError(t, a.EnterEditMode())

	require.NoError(t, a.Escape())
	assert.Equal(t, FocusState{FocusedID: b2}, a.Store().Focus())
	assert.Equal(t, []domain.BlockID{b2}, selected(a))

	require.NoError(t, a.Escape())
	assert.Equal(t, FocusState{FocusedID: b2}, a.Store().Focus())
	assert.Empty(t, selected(a))

	require.NoError(t, a.Escape())
	assert.Equal(t, FocusState{}, a.Store().Focus())

	require.NoError(t, a.Escape(), "nothing left to unwind")
	assert.Equal(t, FocusState{}, a.Store().Focus())
}

func TestRangeScenario(t *testing.T) {
	a, _ := setup(t)

	require.NoError(t, a.SelectBlock(b1))
	assert.Equal(t, []domain.BlockID{b1}, selected(a))

	require.NoError(t, a.ToggleSelection(b3))
	assert.Equal(t, []domain.BlockID{b1, b3}, selected(a))
	assert.Equal(t, b1, a.Store().Selection().AnchorID)

	require.NoError(t, a.SelectRange(b2))
	assert.Equal(t, []domain.BlockID{b1, b2}, selected(a))

	require.NoError(t, a.ExtendSelectionDown())
	assert.Equal(t, []domain.BlockID{b1, b2, b3}, selected(a))
}

func TestMirrorConsistencyAcrossSequence(t *testing.T) {
	a, doc := setup(t)
	steps := []func() error{
		func() error { return a.SelectBlock(b1) },
		func() error { return a.ToggleSelection(b2) },
		func() error { return a.ToggleSelection(b1) },
		func() error { return a.ExtendSelectionDown() },
		func() error { return a.SelectAll() },
		func() error { return a.DeselectBlock(b2) },
		func() error { return a.DeselectBlock(b1) },
		func() error { return a.ExtendSelectionUp() },
		func() error { return a.ClearSelection() },
		func() error { return a.SelectRange(b3) },
		func() error { _, err := doc.RemoveBlock(b3); return err },
		func() error { return a.ToggleSelection(b1) },
		func() error { return a.Escape() },
		func() error { return a.Escape() },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		checkMirror(t, a)
	}
}

func TestSubscribersSeeEveryWrite(t *testing.T) {
	a, _ := setup(t)
	var sizes []int
	var mirrors []domain.BlockID
	a.Store().SubscribeSelection(func(st MultiSelectionState) { sizes = append(sizes, st.Len()) })
	a.Store().SubscribeSelectedBlock(func(id domain.BlockID) { mirrors = append(mirrors, id) })

	require.NoError(t, a.SelectBlock(b1))
	require.NoError(t, a.ToggleSelection(b2))
	require.NoError(t, a.ClearSelection())

	assert.Equal(t, []int{1, 2, 0}, sizes)
	assert.Equal(t, []domain.BlockID{b1, ""}, mirrors)
}

func TestResetClearsState(t *testing.T) {
	a, _ := setup(t)
	require.NoError(t, a.SelectAll())
	require.NoError(t, a.FocusBlock(b2))
	require.NoError(t, a.EnterEditMode())

	a.Reset()
	assert.True(t, a.Store().Selection().IsEmpty())
	assert.Equal(t, FocusState{}, a.Store().Focus())
	assert.Empty(t, a.Store().SelectedBlockID())
}
