//go:build nocutpa

package prim

// enableCutAwarePA is pinned off under the nocutpa tag: every draw routes
// to the stream assembler. Indexed and adjacency draws fail to bind, since
// only the per-vertex tracker can honor restart sentinels and adjacency
// windows.
const enableCutAwarePA = false
