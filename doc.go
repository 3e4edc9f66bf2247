// Package prim assembles geometric primitives from lane-parallel vertex
// streams for a software rasterizer's geometry front end.
//
// # Overview
//
// prim is a Pure Go primitive-assembly library for the GoGPU ecosystem.
// A vertex stage produces shaded vertices eight at a time (one lane batch);
// prim reconstructs points, lines and triangles (including the adjacency
// variants consumed by a geometry stage) according to the draw topology,
// and hands fixed-width batches of primitives to the rasterizer.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/prim"
//	    "github.com/gogpu/prim/wide"
//	)
//
//	// One factory per draw: it selects the assembler and owns the storage.
//	pa, err := prim.NewFactory().Init(prim.DrawState{
//	    Topology: prim.TopologyTriangleList,
//	    NumVerts: 24,
//	    NumAttrs: 2,
//	})
//	if err != nil {
//	    // unsupported topology or bad configuration
//	}
//
//	// Pump vertices through and collect primitive batches.
//	produce := func(base int, rec []wide.Vec4x8, cuts *wide.Mask8) {
//	    *cuts = 0
//	    shade(base, rec) // fill one lane batch of vertices
//	}
//	consume := func(pa prim.Assembler, batch *prim.PrimBatch) error {
//	    return rasterize(batch)
//	}
//	if err := prim.Pump(pa, 0, produce, consume); err != nil {
//	    // consumer error, or a stalled vertex store
//	}
//
// # Assemblers
//
// Three assemblers share one contract, selected per draw by the Factory:
//   - StreamAssembler: fast path for dense streams with no restart markers.
//   - CutAssembler: honors per-vertex primitive-restart bits and the
//     adjacency topologies, over a ring-buffered vertex store.
//   - ArrayAssembler: slices an already-triangulated vertex array (for
//     example a tessellator's output) into batches directly.
//
// # Lane Batches
//
// All data moves in groups of eight (LaneWidth is fixed at 8, matching the
// [8]-element types in package wide). Assembled batches hold up to eight
// primitives; only the final batch of a draw may hold fewer. Attribute data
// is stored lane-major: one wide.Vec4x8 per attribute slot per record.
//
// # Concurrency
//
// An assembler is a synchronous, single-owner state machine. Nothing in this
// package locks; parallelism across draws is the caller's concern (see
// RunDraws), and each worker must own its Factory.
package prim

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
