package editor

import "github.com/aretw0/folium/pkg/domain"

// reduceBlocksByUID maintains the block index.
func reduceBlocksByUID(state *domain.BlockMap, action domain.Action) *domain.BlockMap {
	if state == nil {
		state = domain.NewBlockMap()
	}

	switch action.Type {
	case domain.ActionResetBlocks:
		return domain.NewBlockMap(action.Blocks...)

	case domain.ActionUpdateBlockAttributes:
		block, ok := state.Get(action.UID)
		if !ok {
			return state
		}
		attrs := block.Attributes.Merge(action.Attributes)
		if attrs == block.Attributes {
			return state
		}
		return state.With(block.WithAttributes(attrs))

	case domain.ActionUpdateBlock:
		block, ok := state.Get(action.UID)
		if !ok {
			return state
		}
		return state.With(block.Apply(action.Updates))

	case domain.ActionInsertBlocks:
		return state.With(action.Blocks...)

	case domain.ActionReplaceBlocks:
		if len(liveBlocks(action.Blocks)) == 0 {
			return state
		}
		return state.Without(action.UIDs...).With(action.Blocks...)

	case domain.ActionRemoveBlocks:
		return state.Without(action.UIDs...)
	}

	return state
}

// liveBlocks drops nil entries a decoder may have left in a payload.
func liveBlocks(blocks []*domain.Block) []*domain.Block {
	for _, b := range blocks {
		if b == nil {
			out := make([]*domain.Block, 0, len(blocks))
			for _, b := range blocks {
				if b != nil {
					out = append(out, b)
				}
			}
			return out
		}
	}
	return blocks
}
