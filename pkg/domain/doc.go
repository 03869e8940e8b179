/*
Package domain contains the data model of the folium editor core.

It defines the action records that drive every state change and the immutable
values those actions operate on. This package is kept pure and free of
external I/O, following Hexagonal Architecture principles.

# Key Entities

  - Action: a tagged record describing one intended state change.
  - Block: one addressable content unit of a document.
  - Record: an immutable string-keyed map (attributes, edits, post fields).
  - BlockMap / BlockOrder: the flat document tree (blocks by id, and their order).
  - Selection: the block selection cursor.
  - StateDiff: a partial update describing what an action changed.

Immutable handles return their receiver when a write would change nothing, so
"did anything change?" is always a pointer comparison.
*/
package domain
