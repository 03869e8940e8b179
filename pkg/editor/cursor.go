package editor

import (
	"slices"

	"github.com/aretw0/folium/pkg/domain"
)

// reduceSelection tracks the selected block range and focus.
func reduceSelection(state *domain.Selection, action domain.Action) *domain.Selection {
	if state == nil {
		state = domain.NewSelection()
	}

	switch action.Type {
	case domain.ActionClearSelectedBlock:
		return domain.NewSelection()

	case domain.ActionStartMultiSelect:
		next := *state
		multi := true
		next.MultiSelecting = &multi
		return &next

	case domain.ActionStopMultiSelect:
		next := *state
		next.MultiSelecting = nil
		return &next

	case domain.ActionMultiSelect:
		return &domain.Selection{Start: action.Start, End: action.End, Focus: state.Focus}

	case domain.ActionSelectBlock:
		if action.UID == state.Start && action.UID == state.End {
			return state
		}
		return &domain.Selection{Start: action.UID, End: action.UID, Focus: focusOf(action.Focus)}

	case domain.ActionUpdateFocus:
		return &domain.Selection{Start: action.UID, End: action.UID, Focus: focusOf(action.Config)}

	case domain.ActionInsertBlocks:
		blocks := liveBlocks(action.Blocks)
		if len(blocks) == 0 {
			return state
		}
		first := blocks[0].ID
		return &domain.Selection{Start: first, End: first, Focus: map[string]any{}}

	case domain.ActionReplaceBlocks:
		blocks := liveBlocks(action.Blocks)
		if len(blocks) == 0 || !followsReplacement(state.Start, action.UIDs) {
			return state
		}
		first := blocks[0].ID
		return &domain.Selection{Start: first, End: first, Focus: map[string]any{}}
	}

	return state
}

// reduceHovered tracks the hovered block; "" means none.
func reduceHovered(state string, action domain.Action) string {
	switch action.Type {
	case domain.ActionToggleBlockHovered:
		if action.Hovered {
			return action.UID
		}
		return ""

	case domain.ActionSelectBlock, domain.ActionStartTyping, domain.ActionMultiSelect:
		return ""

	case domain.ActionReplaceBlocks:
		blocks := liveBlocks(action.Blocks)
		if len(blocks) == 0 || !followsReplacement(state, action.UIDs) {
			return state
		}
		return blocks[0].ID
	}

	return state
}

// followsReplacement reports whether a cursor on uid must move to the
// replacing blocks.
func followsReplacement(uid string, replaced []string) bool {
	return uid != "" && slices.Contains(replaced, uid)
}

func focusOf(focus map[string]any) map[string]any {
	if focus == nil {
		return map[string]any{}
	}
	return focus
}
