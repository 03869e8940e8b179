package editor

// BlockTypes is the registry of block types the editor knows about.
// Implementations must be safe for concurrent reads.
type BlockTypes interface {
	// Has reports whether a block type with the given name is registered.
	Has(name string) bool

	// Common returns the names of the types in the common category, in
	// registration order.
	Common() []string
}
