//go:build !nocutpa

package prim

// enableCutAwarePA routes indexed and adjacency draws to the per-vertex
// tracker. Build with the nocutpa tag to force every draw through the
// stream assembler when no input can carry restart sentinels.
const enableCutAwarePA = true
