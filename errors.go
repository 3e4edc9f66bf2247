package prim

import "errors"

var (
	// ErrUnsupportedTopology indicates a topology the selected assembler
	// does not implement. The draw must be rejected; a different topology
	// is never substituted silently.
	ErrUnsupportedTopology = errors.New("prim: unsupported topology")

	// ErrBadAttributeCount indicates an attribute slot count outside the
	// arena's capacity.
	ErrBadAttributeCount = errors.New("prim: attribute count out of range")

	// ErrBadVertexCount indicates a negative or otherwise unusable draw
	// vertex count.
	ErrBadVertexCount = errors.New("prim: vertex count out of range")

	// ErrUnknownIndexFormat indicates an index format with no defined
	// primitive-restart sentinel.
	ErrUnknownIndexFormat = errors.New("prim: unknown index format")

	// ErrStoreStalled indicates a full vertex ring whose buffered vertices
	// cannot complete a single batch, which only a pathologically
	// restart-dense stream can cause.
	ErrStoreStalled = errors.New("prim: vertex store stalled")
)
