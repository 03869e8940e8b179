package domain

import "errors"

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrEmptyDocumentID is returned by stores when called without a document ID.
var ErrEmptyDocumentID = errors.New("document id cannot be empty")

// ErrInvalidAction is returned when an action record cannot be decoded at the boundary.
// Transitions themselves never fail: a well-formed but meaningless action is a no-op.
var ErrInvalidAction = errors.New("invalid action")
