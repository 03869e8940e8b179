/*
Package history turns pure state-transition functions into undoable ones.

Wrap keeps a {past, present, future} Envelope around any Transition and
handles the UNDO and REDO actions itself. A transition that returns its input
unchanged produces no history entry, and the wrapper then returns the very
same *Envelope, so callers can skip downstream work with a pointer check.

Scope builds on Wrap for composite states: it projects each new envelope into
a caller-defined view value (typically a struct with accessor methods that
read the present snapshot) and keeps the previous view when nothing changed.
*/
package history
