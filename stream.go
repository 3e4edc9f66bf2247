package prim

import (
	"fmt"

	"github.com/gogpu/prim/wide"
)

// paFunc advances a topology's state machine by one step. Each call consumes
// the record most recently handed out by NextVsOutput: a fetch step banks it
// and returns false, an assembly step permutes the banked records into out
// and returns true. Every step registers its successor through setNext.
type paFunc func(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool

// paSingleFunc extracts one primitive of the current batch as scalar
// vertices. The batch's assembly step installs the matching extractor before
// it returns, so the pair can never disagree.
type paSingleFunc func(pa *StreamAssembler, slot, prim int, out []wide.Vec4)

// StreamAssembler is the fast-path assembler for draws whose vertex stream
// carries no restart sentinels. It walks a per-topology state machine over
// whole lane batches and reconstructs primitives with fixed permutations, so
// the per-vertex work of the cut-aware path never runs.
//
// The state machine is double buffered: each step registers the next step's
// function, primitive increment, and counter-reset through setNext, and
// NextPrim commits them. Assembly steps for list topologies reset the
// counter so the producer reuses the same records; strip steps let the
// counter run and track the previous and current record instead.
type StreamAssembler struct {
	recs     []wide.Vec4x8
	numAttrs int
	numRecs  int

	topology     Topology
	vertsPerPrim int

	numPrims         int // total primitives in the draw
	numPrimsComplete int
	numSimdPrims     int // extra batches extractable before more vertices

	cur     int // record index of the current vertex output
	prev    int // record index of the previous vertex output
	first   int // record index of the draw's first output, for fan-style reuse
	counter int
	reset   bool

	primIDIncr int32
	vPrimID    wide.I32x8

	pfnPa       paFunc
	pfnPaSingle paSingleFunc
	pfnPaReset  paFunc // initial step, restored by Reset

	pfnPaNext             paFunc
	nextNumSimdPrims      int
	nextNumPrimsIncrement int
	nextReset             bool
	streaming             bool

	scratchCuts wide.Mask8 // placeholder restart slot, never read
}

// newStreamAssembler binds a state machine for topology over a record
// buffer. recs holds numRecs records of numAttrs attribute slots each;
// totalPrims is the primitive count of the draw. Topologies with adjacency
// need per-vertex handling and are rejected here.
func newStreamAssembler(recs []wide.Vec4x8, numAttrs, numRecs int, topology Topology, totalPrims int, streaming bool) (*StreamAssembler, error) {
	pa := &StreamAssembler{
		recs:       recs,
		numAttrs:   numAttrs,
		numRecs:    numRecs,
		topology:   topology,
		numPrims:   totalPrims,
		primIDIncr: LaneWidth,
		vPrimID:    wide.IotaI32(),
		streaming:  streaming,
	}

	switch topology {
	case TopologyPointList:
		pa.pfnPaReset, pa.pfnPaSingle = paPointList0, paPointListSingle0
		pa.vertsPerPrim = 1
	case TopologyLineList:
		pa.pfnPaReset, pa.pfnPaSingle = paLineList0, paLineListSingle0
		pa.vertsPerPrim = 2
	case TopologyLineStrip:
		pa.pfnPaReset, pa.pfnPaSingle = paLineStrip0, paLineStripSingle0
		pa.vertsPerPrim = 2
	case TopologyTriangleList:
		pa.pfnPaReset, pa.pfnPaSingle = paTriList0, paTriListSingle0
		pa.vertsPerPrim = 3
	case TopologyTriangleStrip:
		pa.pfnPaReset, pa.pfnPaSingle = paTriStrip0, paTriStripSingle0
		pa.vertsPerPrim = 3
	default:
		return nil, fmt.Errorf("%w: %s needs the cut-aware assembler", ErrUnsupportedTopology, topology)
	}
	pa.pfnPa = pa.pfnPaReset

	return pa, nil
}

// NewStreamingAssembler replays an already-materialized vertex stream, such
// as a stream-output buffer, through the fast-path state machine. data holds
// the whole stream record-major with numAttrs attribute slots per record and
// numVerts vertices in total. Callers drive it with NextStreamOutput in
// place of NextVsOutput; the counter never resets, so the walk is strictly
// linear. List topologies fetch whole cycles of two or three records, so a
// ragged tail needs padding records; the lane masks keep their contents out
// of every assembled batch.
func NewStreamingAssembler(topology Topology, data []wide.Vec4x8, numAttrs, numVerts int) (*StreamAssembler, error) {
	if numAttrs < 1 || numAttrs > maxAttributes {
		return nil, fmt.Errorf("%w: %d", ErrBadAttributeCount, numAttrs)
	}
	if numVerts < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadVertexCount, numVerts)
	}
	numPrims := topology.PrimCount(numVerts)
	batches := (numPrims + LaneWidth - 1) / LaneWidth
	numRecs := (numVerts + LaneWidth - 1) / LaneWidth
	switch topology {
	case TopologyTriangleList:
		numRecs = max(numRecs, 3*batches)
	case TopologyLineList:
		numRecs = max(numRecs, 2*batches)
	}
	if len(data) < numRecs*numAttrs {
		return nil, fmt.Errorf("%w: stream holds %d records, draw needs %d",
			ErrBadVertexCount, len(data)/numAttrs, numRecs)
	}
	return newStreamAssembler(data, numAttrs, numRecs, topology, numPrims, true)
}

// simdVector returns attribute slot of the banked record index.
func (pa *StreamAssembler) simdVector(index, slot int) wide.Vec4x8 {
	return pa.recs[index*pa.numAttrs+slot]
}

// setNext registers the step NextPrim commits to. The single-primitive
// extractor is installed immediately: an assembly step registers it on the
// way out, so it always matches the batch the caller is holding.
func (pa *StreamAssembler) setNext(fn paFunc, single paSingleFunc, numSimdPrims, numPrimsIncrement int, reset bool) {
	pa.pfnPaNext = fn
	pa.nextNumSimdPrims = numSimdPrims
	pa.nextNumPrimsIncrement = numPrimsIncrement
	pa.nextReset = reset

	pa.pfnPaSingle = single
}

// HasWork reports whether primitives remain to assemble for the draw.
func (pa *StreamAssembler) HasWork() bool {
	return pa.numPrimsComplete < pa.numPrims
}

// Assemble runs the current state-machine step over attribute slot.
func (pa *StreamAssembler) Assemble(slot int, out []wide.Vec4x8) bool {
	return pa.pfnPa(pa, slot, out)
}

// AssembleSingle extracts primitive prim of the current batch.
func (pa *StreamAssembler) AssembleSingle(slot, prim int, out []wide.Vec4) {
	pa.pfnPaSingle(pa, slot, prim, out)
}

// NextPrim commits the registered step and reports whether another batch can
// be extracted before producing more vertices.
func (pa *StreamAssembler) NextPrim() bool {
	pa.pfnPa = pa.pfnPaNext
	pa.numSimdPrims = pa.nextNumSimdPrims
	pa.numPrimsComplete += pa.nextNumPrimsIncrement
	pa.reset = pa.nextReset

	if pa.streaming {
		pa.reset = false
	}

	morePrims := false

	if pa.numSimdPrims > 0 {
		morePrims = true
		pa.numSimdPrims--
	} else {
		if pa.reset {
			pa.counter = 0
		} else {
			pa.counter++
		}
		pa.reset = false
	}

	if !pa.HasWork() {
		morePrims = false
	}

	return morePrims
}

// NumPrims returns the valid primitives in the current batch. The registered
// increment overshoots the draw total only on the final batch; the overshoot
// is the number of dead lanes.
func (pa *StreamAssembler) NumPrims() int {
	if pa.numPrimsComplete+pa.nextNumPrimsIncrement > pa.numPrims {
		return LaneWidth - (pa.numPrimsComplete + pa.nextNumPrimsIncrement - pa.numPrims)
	}
	return LaneWidth
}

// PrimID returns the per-lane primitive IDs of the current batch, offset by
// start.
func (pa *StreamAssembler) PrimID(start int32) wide.I32x8 {
	return pa.vPrimID.AddScalar(start + pa.primIDIncr*int32(pa.numPrimsComplete/LaneWidth))
}

// Reset rewinds to the initial step. The registered next step is left in
// place; the first assembly step overwrites it before any batch is ready.
func (pa *StreamAssembler) Reset() {
	pa.pfnPa = pa.pfnPaReset
	pa.numPrimsComplete = 0
	pa.numSimdPrims = 0
	pa.cur = 0
	pa.prev = 0
	pa.first = 0
	pa.counter = 0
	pa.reset = false
}

// VertsPerPrim returns the vertex positions per assembled primitive.
func (pa *StreamAssembler) VertsPerPrim() int { return pa.vertsPerPrim }

// Topology returns the topology the assembler was built for.
func (pa *StreamAssembler) Topology() Topology { return pa.topology }

// NextVsOutput returns the next writable record and advances the write
// cursor. List steps reset the counter once a batch completes, so the
// producer cycles over the same records; strip steps keep the previous
// record live and wrap around the buffer.
func (pa *StreamAssembler) NextVsOutput() []wide.Vec4x8 {
	pa.prev = pa.cur
	pa.cur = pa.counter % pa.numRecs
	return pa.recs[pa.cur*pa.numAttrs : (pa.cur+1)*pa.numAttrs]
}

// NextVsIndices hands back an unused scratch slot: the fast path assumes a
// stream without restarts, so there are no bits to set.
func (pa *StreamAssembler) NextVsIndices() *wide.Mask8 {
	return &pa.scratchCuts
}

// NextStreamOutput advances over an already-materialized stream and reports
// whether work remains. The record index follows the counter with no wrap: a
// streaming assembler owns the whole stream. A strip's final batch can step
// the counter one past the stream; the cursor stays on the last record and
// the dead lanes reread banked data.
func (pa *StreamAssembler) NextStreamOutput() ([]wide.Vec4x8, bool) {
	pa.prev = pa.cur
	pa.cur = min(pa.counter, pa.numRecs-1)
	return pa.recs[pa.cur*pa.numAttrs : (pa.cur+1)*pa.numAttrs], pa.HasWork()
}

// IsVertexStoreFull is always false: the fast path never buffers more than
// the records its current step references.
func (pa *StreamAssembler) IsVertexStoreFull() bool { return false }
