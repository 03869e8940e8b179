package editor

import (
	"slices"

	"github.com/aretw0/folium/pkg/domain"
)

// reduceBlockOrder maintains the ordered list of top-level block ids.
func reduceBlockOrder(state *domain.BlockOrder, action domain.Action) *domain.BlockOrder {
	if state == nil {
		state = domain.NewBlockOrder()
	}

	switch action.Type {
	case domain.ActionResetBlocks:
		return domain.NewBlockOrder(domain.BlockIDs(action.Blocks)...)

	case domain.ActionInsertBlocks:
		return insertAt(state, domain.BlockIDs(action.Blocks), action.Position)

	case domain.ActionMoveBlocksUp:
		return moveUp(state, action.UIDs)

	case domain.ActionMoveBlocksDown:
		return moveDown(state, action.UIDs)

	case domain.ActionReplaceBlocks:
		blocks := liveBlocks(action.Blocks)
		if len(blocks) == 0 {
			return state
		}
		return replace(state, action.UIDs, domain.BlockIDs(blocks))

	case domain.ActionRemoveBlocks:
		return remove(state, action.UIDs)
	}

	return state
}

func insertAt(state *domain.BlockOrder, ids []string, position *int) *domain.BlockOrder {
	if len(ids) == 0 {
		return state
	}
	order := state.UIDs()
	at := len(order)
	if position != nil {
		at = min(max(*position, 0), len(order))
	}
	return domain.NewBlockOrder(slices.Insert(order, at, ids...)...)
}

// moveUp swaps the contiguous run uids with the id right before it.
// uids must be listed in document order; this is not checked beyond what is
// needed to stay in bounds.
func moveUp(state *domain.BlockOrder, uids []string) *domain.BlockOrder {
	if len(uids) == 0 || state.Len() == 0 || uids[0] == state.First() {
		return state
	}
	first, last := state.Index(uids[0]), state.Index(uids[len(uids)-1])
	if first < 1 || last < first {
		return state
	}
	order := state.UIDs()
	swapped := order[first-1]

	next := make([]string, 0, len(order))
	next = append(next, order[:first-1]...)
	next = append(next, uids...)
	next = append(next, swapped)
	next = append(next, order[last+1:]...)
	return domain.NewBlockOrder(next...)
}

// moveDown swaps the contiguous run uids with the id right after it.
func moveDown(state *domain.BlockOrder, uids []string) *domain.BlockOrder {
	if len(uids) == 0 || state.Len() == 0 || uids[len(uids)-1] == state.Last() {
		return state
	}
	first, last := state.Index(uids[0]), state.Index(uids[len(uids)-1])
	if first < 0 || last < first || last+1 >= state.Len() {
		return state
	}
	order := state.UIDs()
	swapped := order[last+1]

	next := make([]string, 0, len(order))
	next = append(next, order[:first]...)
	next = append(next, swapped)
	next = append(next, uids...)
	next = append(next, order[last+2:]...)
	return domain.NewBlockOrder(next...)
}

// replace puts ids where uids[0] was and drops every other member of uids.
func replace(state *domain.BlockOrder, uids, ids []string) *domain.BlockOrder {
	order := state.UIDs()
	next := make([]string, 0, len(order)+len(ids))
	for _, uid := range order {
		if len(uids) > 0 && uid == uids[0] {
			next = append(next, ids...)
			continue
		}
		if !slices.Contains(uids, uid) {
			next = append(next, uid)
		}
	}
	return domain.NewBlockOrder(next...)
}

func remove(state *domain.BlockOrder, uids []string) *domain.BlockOrder {
	order := state.UIDs()
	next := slices.DeleteFunc(order, func(uid string) bool {
		return slices.Contains(uids, uid)
	})
	if len(next) == state.Len() {
		return state
	}
	return domain.NewBlockOrder(next...)
}
