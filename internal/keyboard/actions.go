package keyboard

// ActionType names a semantic canvas action
type ActionType string

const (
	ActionFocusNext           ActionType = "FOCUS_NEXT"
	ActionFocusPrev           ActionType = "FOCUS_PREV"
	ActionFocusFirst          ActionType = "FOCUS_FIRST"
	ActionFocusLast           ActionType = "FOCUS_LAST"
	ActionExtendSelectionDown ActionType = "EXTEND_SELECTION_DOWN"
	ActionExtendSelectionUp   ActionType = "EXTEND_SELECTION_UP"
	ActionEnterEditMode       ActionType = "ENTER_EDIT_MODE"
	ActionExitEditMode        ActionType = "EXIT_EDIT_MODE"
	ActionClearSelection      ActionType = "CLEAR_SELECTION"
	ActionSelectAll           ActionType = "SELECT_ALL"
	ActionSelectFocused       ActionType = "SELECT_FOCUSED"
	ActionToggleFocused       ActionType = "TOGGLE_FOCUSED"
)

// Action is a command produced from a key press. The set of implementations
// is closed; Mapper.Execute switches over all of them.
type Action interface {
	Type() ActionType
	action()
}

// Navigation actions
type FocusNextAction struct{}

func (FocusNextAction) Type() ActionType { return ActionFocusNext }

type FocusPrevAction struct{}

func (FocusPrevAction) Type() ActionType { return ActionFocusPrev }

type FocusFirstAction struct{}

func (FocusFirstAction) Type() ActionType { return ActionFocusFirst }

type FocusLastAction struct{}

func (FocusLastAction) Type() ActionType { return ActionFocusLast }

// Range actions
type ExtendSelectionDownAction struct{}

func (ExtendSelectionDownAction) Type() ActionType { return ActionExtendSelectionDown }

type ExtendSelectionUpAction struct{}

func (ExtendSelectionUpAction) Type() ActionType { return ActionExtendSelectionUp }

// Edit mode actions
type EnterEditModeAction struct{}

func (EnterEditModeAction) Type() ActionType { return ActionEnterEditMode }

type ExitEditModeAction struct{}

func (ExitEditModeAction) Type() ActionType { return ActionExitEditMode }

// Selection actions
type ClearSelectionAction struct{}

func (ClearSelectionAction) Type() ActionType { return ActionClearSelection }

type SelectAllAction struct{}

func (SelectAllAction) Type() ActionType { return ActionSelectAll }

type SelectFocusedAction struct{}

func (SelectFocusedAction) Type() ActionType { return ActionSelectFocused }

type ToggleFocusedAction struct{}

func (ToggleFocusedAction) Type() ActionType { return ActionToggleFocused }

func (FocusNextAction) action()           {}
func (FocusPrevAction) action()           {}
func (FocusFirstAction) action()          {}
func (FocusLastAction) action()           {}
func (ExtendSelectionDownAction) action() {}
func (ExtendSelectionUpAction) action()   {}
func (EnterEditModeAction) action()       {}
func (ExitEditModeAction) action()        {}
func (ClearSelectionAction) action()      {}
func (SelectAllAction) action()           {}
func (SelectFocusedAction) action()       {}
func (ToggleFocusedAction) action()       {}
