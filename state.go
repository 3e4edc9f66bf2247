package prim

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/prim/wide"
)

// LaneWidth is the number of vertices processed together as one batch, and
// the largest number of primitives one assembled batch carries.
const LaneWidth = 8

// maxVertsPerPrim is the deepest per-primitive vertex window any supported
// topology references: six, for the triangle list with adjacency.
const maxVertsPerPrim = 6

// storeRecords sizes the factory's vertex arena. The spare record keeps strip
// windows that reach behind the tail cursor out of the producer's write range
// while the ring wraps.
const storeRecords = maxVertsPerPrim + 1

// maxAttributes bounds the attribute slots a vertex record may carry.
const maxAttributes = 32

// Assembler reconstructs primitives from a lane-parallel vertex stream.
// One Assembler serves exactly one draw and is owned by one goroutine.
//
// The canonical loop interleaves production and assembly:
//
//	for pa.HasWork() {
//	    for pa.IsVertexStoreFull() {
//	        drain one batch
//	    }
//	    fill pa.NextVsIndices(), then pa.NextVsOutput()
//	    for {
//	        if pa.Assemble(slot, out) { consume batch }
//	        if !pa.NextPrim() { break }
//	    }
//	}
type Assembler interface {
	// HasWork reports whether primitives remain to assemble for the draw.
	HasWork() bool

	// Assemble produces the next lane batch for attribute slot. It writes,
	// per primitive vertex position, one vector holding that vertex's slot
	// data across all lanes, and reports whether a batch is ready. A ready
	// batch holds LaneWidth primitives, or fewer at the end of the draw;
	// NumPrims tells how many lanes are valid. out must hold at least
	// VertsPerPrim elements.
	Assemble(slot int, out []wide.Vec4x8) bool

	// AssembleSingle extracts one primitive of the current batch, one
	// scalar vertex per primitive vertex position. It serves the tail of a
	// draw whose final batch does not fill all lanes, and is valid only
	// after Assemble has reported a ready batch.
	AssembleSingle(slot, prim int, out []wide.Vec4)

	// NextPrim commits the pending state transition and advances past the
	// assembled batch. The variants disagree on the return value: the
	// stream assembler reports whether another batch can be extracted
	// without producing more vertices, while the cut assembler always
	// returns false and callers poll HasWork and Assemble instead.
	NextPrim() bool

	// NumPrims returns the number of valid primitives in the current batch,
	// at most LaneWidth.
	NumPrims() int

	// PrimID returns the per-lane primitive IDs of the current batch,
	// offset by start.
	PrimID(start int32) wide.I32x8

	// Reset rewinds the assembler to the start of the draw.
	Reset()

	// VertsPerPrim returns the vertex positions per assembled primitive.
	VertsPerPrim() int

	// Topology returns the topology the assembler was built for.
	Topology() Topology

	// NextVsOutput returns the next writable vertex record for the shader
	// stage to fill and advances the write cursor.
	NextVsOutput() []wide.Vec4x8

	// NextVsIndices returns the restart-bit slot paired with the record the
	// following NextVsOutput call returns. The stream assembler hands back
	// an unused scratch slot. Fetch the bits before the record.
	NextVsIndices() *wide.Mask8

	// NextStreamOutput advances the stream-output cursor and reports
	// whether work remains. It replaces NextVsOutput when the producer has
	// already materialized the whole stream.
	NextStreamOutput() ([]wide.Vec4x8, bool)

	// IsVertexStoreFull reports whether writing one more lane batch would
	// overrun unconsumed vertices. Backpressure, not an error: the producer
	// must drain a batch first. Always false for the stream assembler.
	IsVertexStoreFull() bool
}

// DrawState is the construction-time configuration for one draw, captured
// from the API state. The assemblers treat it as opaque input.
type DrawState struct {
	// Topology selects the assembly rule.
	Topology Topology

	// Indexed marks an indexed draw. Only index streams can encode a
	// primitive-restart sentinel, so indexed draws route to the cut-aware
	// assembler.
	Indexed bool

	// IndexFormat is the index element format of an indexed draw. It
	// determines the restart sentinel (see RestartSentinel).
	IndexFormat gputypes.IndexFormat

	// GSEnabled marks a draw whose primitives feed a geometry stage, which
	// consumes adjacency vertices instead of dropping them.
	GSEnabled bool

	// NumVerts is the total vertex count of the draw.
	NumVerts int

	// NumAttrs is the number of attribute slots per vertex record.
	NumAttrs int

	// ProcessCutVerts feeds restart-marked vertices to the topology as
	// ordinary vertices before restarting. Backends whose fetch stage sends
	// valid vertices at cuts need this; fetch stages that send junk at cuts
	// leave it false.
	ProcessCutVerts bool
}

func (s DrawState) validate() error {
	if s.Topology == TopologyUnknown || s.Topology > TopologyTriangleStripAdj {
		return fmt.Errorf("%w: %s", ErrUnsupportedTopology, s.Topology)
	}
	if s.NumVerts < 0 {
		return fmt.Errorf("%w: %d", ErrBadVertexCount, s.NumVerts)
	}
	if s.NumAttrs < 1 || s.NumAttrs > maxAttributes {
		return fmt.Errorf("%w: %d", ErrBadAttributeCount, s.NumAttrs)
	}
	return nil
}
