package editor

import "github.com/aretw0/folium/pkg/domain"

// reduceCurrentPost mirrors the last-known server copy of the post.
func reduceCurrentPost(state *domain.Record, action domain.Action) *domain.Record {
	if state == nil {
		state = domain.NewRecord(nil)
	}

	switch action.Type {
	case domain.ActionResetPost, domain.ActionUpdatePost:
		if action.Post != nil {
			return domain.NewRecord(domain.NormalizeAll(action.Post))
		}
		if action.Edits != nil {
			post := state.Map()
			for k, v := range action.Edits {
				post[k] = v
			}
			return domain.NewRecord(domain.NormalizeAll(post))
		}
	}

	return state
}
