package keyboard

import (
	"blockcanvas/internal/config"
)

// ParseKeyboardEvent maps a key press to an Action, or nil when the canvas
// does not handle it and the event should reach the focused block.
func ParseKeyboardEvent(ev KeyboardEvent, cfg config.KeyboardConfig, isEditing bool) Action {
	shift := ev.ShiftKey()
	cmd := ev.MetaKey() || ev.CtrlKey()

	switch ev.Key() {
	case "Escape":
		if !cfg.EnableEscape {
			return nil
		}
		if isEditing {
			return ExitEditModeAction{}
		}
		return ClearSelectionAction{}

	case "Enter":
		if !cfg.EnableEnterToEdit || shift || isEditing {
			return nil
		}
		return EnterEditModeAction{}

	case "ArrowDown", "ArrowUp", "ArrowRight", "ArrowLeft":
		if !cfg.EnableArrowKeys || isEditing {
			return nil
		}
		if shift {
			return parseShiftArrow(ev.Key(), cfg)
		}
		if ev.Key() == "ArrowDown" || ev.Key() == "ArrowRight" {
			return FocusNextAction{}
		}
		return FocusPrevAction{}

	case "Home", "End":
		if !cfg.EnableArrowKeys || isEditing {
			return nil
		}
		if ev.Key() == "Home" {
			return FocusFirstAction{}
		}
		return FocusLastAction{}

	case "Tab":
		if !cfg.EnableTabNavigation || isEditing {
			return nil
		}
		if shift {
			return FocusPrevAction{}
		}
		return FocusNextAction{}

	case "a", "A":
		if !cmd || !cfg.EnableSelectAll || isEditing {
			return nil
		}
		return SelectAllAction{}

	case " ":
		if isEditing {
			return nil
		}
		switch {
		case shift || ev.MetaKey():
			return ToggleFocusedAction{}
		case ev.CtrlKey():
			return nil
		default:
			return SelectFocusedAction{}
		}
	}

	return nil
}

// parseShiftArrow only handles vertical extension; Shift+Left/Right are left to the block
func parseShiftArrow(key string, cfg config.KeyboardConfig) Action {
	if !cfg.EnableShiftArrows {
		return nil
	}
	switch key {
	case "ArrowDown":
		return ExtendSelectionDownAction{}
	case "ArrowUp":
		return ExtendSelectionUpAction{}
	}
	return nil
}
