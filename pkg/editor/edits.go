package editor

import "github.com/aretw0/folium/pkg/domain"

// keyContent is the post attribute superseded by RESET_BLOCKS.
const keyContent = "content"

// reduceEdits maintains the pending-edits overlay against the last-known post.
func reduceEdits(state *domain.Record, action domain.Action) *domain.Record {
	if state == nil {
		state = domain.NewRecord(nil)
	}

	switch action.Type {
	case domain.ActionEditPost, domain.ActionSetupNewPost:
		return state.Merge(action.Edits)

	case domain.ActionResetBlocks:
		// Fresh blocks supersede any pending raw content edit.
		return state.Without(keyContent)

	case domain.ActionResetPost:
		// Drop the edits that now match the freshly loaded post. A key the
		// post lacks never matches, not even a nil edit.
		var settled []string
		for _, key := range state.Keys() {
			value, ok := action.Post[key]
			if ok && domain.Same(state.Value(key), domain.Normalize(value)) {
				settled = append(settled, key)
			}
		}
		return state.Without(settled...)
	}

	return state
}
