/*
Package editor holds the editor state and its pure transition functions.

The state is a tree of immutable slices. Each slice is an independent function
of its own previous value and the action; no slice reads another. A slice that
does not react to an action returns its input unchanged, and combined states
do the same when all their slices did, so a no-op dispatch allocates nothing
and callers can detect it with a pointer comparison.

# Layout

  - View: the undoable document (pending edits, block index, block order)
    under a history envelope, reset by RESET_POST.
  - CurrentPost: the last-known server post, raw fields normalized.
  - Selection and Hovered: cursors that follow blocks across replacement.
  - Interface slices: typing flag, per-block mode, insertion point,
    preferences, active panel, saving status and notices.
*/
package editor
