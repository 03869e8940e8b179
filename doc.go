/*
Package folium is the in-memory state core of a block-based content editor.

A document is a flat, ordered list of blocks plus a pending-edits overlay on
top of the last-known copy of the post, and a selection/hover cursor. All of
it changes only through actions: immutable records applied one at a time by
pure transition functions. Undo and redo are ordinary actions too.

# Key Features

  - Reference-stable updates: an action that changes nothing returns the very
    same state, so "did anything change?" is a pointer comparison.
  - Undo/redo over the document (blocks, order and edits), reset whenever a
    fresh post is loaded.
  - Cursors that follow blocks across replacement without reading the tree.
  - Pluggable persistence (memory, files, Redis, SQLite) with optional
    encryption, exposed over HTTP and MCP.

# Usage

	ed := folium.New()
	ctx := context.Background()

	ed.Dispatch(ctx, domain.Action{
		Type:   domain.ActionInsertBlocks,
		Blocks: []*domain.Block{domain.NewBlock("intro", "core/paragraph", nil)},
	})

	state, _ := ed.Undo(ctx)
	fmt.Println(len(state.Blocks())) // 0

The transitions themselves live in pkg/editor and can be used without the
Editor wrapper, e.g. to replay actions against any earlier state.
*/
package folium
