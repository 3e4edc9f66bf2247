package prim

import (
	"fmt"

	"github.com/gogpu/prim/wide"
)

// cutFunc feeds one vertex to a topology's per-vertex tracker. finish is set
// only when a strip-adjacency carryover must be completed at a restart or at
// the end of the draw; the vertex index is ignored on that call.
type cutFunc func(index int, finish bool)

// CutAssembler reconstructs primitives from a vertex stream that may carry
// primitive-restart sentinels. Restarts can split the stream anywhere, so
// fixed permutations are out: the assembler walks vertices one by one,
// tracking each topology's window explicitly, and banks per-lane vertex
// indices until a batch of primitives is complete. Attribute data is then
// pulled straight from the banked indices with gathers.
//
// The vertex store is a ring. The producer writes records at the head
// cursor and must drain assembled batches once IsVertexStoreFull reports
// backpressure; cur marks the next unprocessed vertex and tail the oldest
// one the current batch still references.
type CutAssembler struct {
	recs     []wide.Vec4x8
	cuts     []wide.Mask8
	numAttrs int
	numVerts int // ring capacity in vertices

	numRemainingVerts  int
	numVertsToAssemble int

	// banked vertex indices for the batch under assembly, one vector per
	// primitive vertex position, plus their cached load coordinates
	indices  [maxVertsPerPrim]wide.I32x8
	elemBase [maxVertsPerPrim]wide.I32x8
	elemLane [maxVertsPerPrim]wide.I32x8

	numPrimsAssembled int
	headVertex        int
	tailVertex        int
	curVertex         int
	vPrimID           wide.I32x8
	needOffsets       bool
	vertsPerPrim      int
	processCutVerts   bool

	topology Topology

	// topology window tracking
	vert           [maxVertsPerPrim]int
	curIndex       int
	reverseWinding bool
	adjExtraVert   int

	pfnPa cutFunc
}

// newCutAssembler binds a per-vertex tracker for topology over store's ring.
// numVerts is the vertex count of the draw. When gsEnabled is set, the
// adjacency topologies keep their adjacent vertices; otherwise the trackers
// emit only the inner primitive. processCutVerts feeds restart-marked
// vertices through the tracker before restarting.
func newCutAssembler(store *vertexStore, topology Topology, numVerts, numAttrs int, gsEnabled, processCutVerts bool) (*CutAssembler, error) {
	pa := &CutAssembler{
		recs:               store.data,
		cuts:               store.cuts,
		numAttrs:           numAttrs,
		numVerts:           storeRecords * LaneWidth,
		numRemainingVerts:  numVerts,
		numVertsToAssemble: numVerts,
		vPrimID:            wide.IotaI32(),
		vertsPerPrim:       topology.VertsPerPrim(gsEnabled),
		processCutVerts:    processCutVerts,
		topology:           topology,
		adjExtraVert:       -1,
	}

	switch topology {
	case TopologyPointList:
		pa.pfnPa = pa.vertPointList
	case TopologyLineList:
		pa.pfnPa = pa.vertLineList
	case TopologyLineStrip:
		pa.pfnPa = pa.vertLineStrip
	case TopologyLineListAdj:
		if gsEnabled {
			pa.pfnPa = pa.vertLineListAdj
		} else {
			pa.pfnPa = pa.vertLineListAdjNoGS
		}
	case TopologyLineStripAdj:
		if gsEnabled {
			pa.pfnPa = pa.vertLineStripAdj
		} else {
			pa.pfnPa = pa.vertLineStripAdjNoGS
		}
	case TopologyTriangleList:
		pa.pfnPa = pa.vertTriList
	case TopologyTriangleListAdj:
		if gsEnabled {
			pa.pfnPa = pa.vertTriListAdj
		} else {
			pa.pfnPa = pa.vertTriListAdjNoGS
		}
	case TopologyTriangleStrip:
		pa.pfnPa = pa.vertTriStrip
	case TopologyTriangleStripAdj:
		if gsEnabled {
			pa.pfnPa = pa.vertTriStripAdjGS
		} else {
			pa.pfnPa = pa.vertTriStripAdjNoGS
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTopology, topology)
	}

	return pa, nil
}

// HasWork reports whether vertices remain, or a strip-adjacency carryover
// still owes its final primitive.
func (pa *CutAssembler) HasWork() bool {
	return pa.numRemainingVerts > 0 || pa.adjExtraVert != -1
}

// IsVertexStoreFull reports whether writing one more record would land on
// vertices the current batch still references.
func (pa *CutAssembler) IsVertexStoreFull() bool {
	return (pa.headVertex+LaneWidth)%pa.numVerts == pa.tailVertex
}

// NextVsOutput returns the record at the head cursor and advances the head
// by one lane batch, wrapping around the ring.
func (pa *CutAssembler) NextVsOutput() []wide.Vec4x8 {
	rec := pa.headVertex / LaneWidth
	pa.headVertex = (pa.headVertex + LaneWidth) % pa.numVerts
	pa.needOffsets = true
	return pa.recs[rec*pa.numAttrs : (rec+1)*pa.numAttrs]
}

// NextVsIndices returns the restart bits paired with the record the next
// NextVsOutput call hands out, so fetch the bits first. Producers assign the
// whole mask; ring reuse would otherwise accumulate stale bits.
func (pa *CutAssembler) NextVsIndices() *wide.Mask8 {
	rec := pa.headVertex / LaneWidth
	return &pa.cuts[rec]
}

// NextStreamOutput advances the head cursor linearly, with no wrap, and
// reports whether work remains. It serves a cut stream materialized in
// full; the returned record is nil once the cursor passes the store.
func (pa *CutAssembler) NextStreamOutput() ([]wide.Vec4x8, bool) {
	rec := pa.headVertex / LaneWidth
	pa.headVertex += LaneWidth
	pa.needOffsets = true
	if (rec+1)*pa.numAttrs > len(pa.recs) {
		return nil, pa.HasWork()
	}
	return pa.recs[rec*pa.numAttrs : (rec+1)*pa.numAttrs], pa.HasWork()
}

// PrimID returns the per-lane primitive IDs of the current batch, offset by
// start. Restarts do not skip IDs: every assembled primitive numbers off in
// order.
func (pa *CutAssembler) PrimID(start int32) wide.I32x8 {
	return pa.vPrimID.AddScalar(start)
}

// Reset rewinds the assembler to the start of the draw.
func (pa *CutAssembler) Reset() {
	pa.numRemainingVerts = pa.numVertsToAssemble
	pa.numPrimsAssembled = 0
	pa.curIndex = 0
	pa.curVertex = 0
	pa.tailVertex = 0
	pa.headVertex = 0
	pa.reverseWinding = false
	pa.adjExtraVert = -1
	pa.vPrimID = wide.IotaI32()
}

// VertsPerPrim returns the vertex positions per assembled primitive.
func (pa *CutAssembler) VertsPerPrim() int { return pa.vertsPerPrim }

// Topology returns the topology the assembler was built for.
func (pa *CutAssembler) Topology() Topology { return pa.topology }

// restartTopology abandons the open window and starts a fresh primitive.
func (pa *CutAssembler) restartTopology() {
	pa.curIndex = 0
	pa.reverseWinding = false
	pa.adjExtraVert = -1
}

func (pa *CutAssembler) isCutIndex(vertex int) bool {
	return pa.cuts[vertex/LaneWidth].Bit(vertex & (LaneWidth - 1))
}

// processVerts walks unprocessed vertices until a full batch of primitives
// is banked, the produced vertices run out, or the draw ends.
func (pa *CutAssembler) processVerts() {
	for pa.numPrimsAssembled != LaneWidth &&
		pa.numRemainingVerts > 0 &&
		pa.curVertex != pa.headVertex {

		if pa.isCutIndex(pa.curVertex) {
			if pa.processCutVerts {
				pa.pfnPa(pa.curVertex, false)
			}
			// complete the strip-adjacency carryover before restarting
			if pa.adjExtraVert != -1 {
				pa.pfnPa(pa.curVertex, true)
			}
			pa.restartTopology()
		} else {
			pa.pfnPa(pa.curVertex, false)
		}

		pa.curVertex = (pa.curVertex + 1) % pa.numVerts
		pa.numRemainingVerts--
	}

	// the final strip-adjacency primitive completes only once the draw ends
	if pa.numPrimsAssembled != LaneWidth && pa.numRemainingVerts == 0 && pa.adjExtraVert != -1 {
		pa.pfnPa(pa.curVertex, true)
	}
}

// advance retires the current batch: the tail catches up to the next
// unprocessed vertex and the primitive IDs step past the batch.
func (pa *CutAssembler) advance() {
	pa.tailVertex = pa.curVertex
	pa.numPrimsAssembled = 0
	pa.vPrimID = pa.vPrimID.AddScalar(LaneWidth)
}

// NextPrim retires the batch once it is full or the draw is exhausted. It
// always returns false: extracting another batch needs more produced
// vertices, so callers poll HasWork and Assemble instead.
func (pa *CutAssembler) NextPrim() bool {
	if pa.numPrimsAssembled == LaneWidth || pa.numRemainingVerts <= 0 {
		pa.advance()
	}
	return false
}

// computeOffsets turns the banked vertex indices into load coordinates:
// the element index of each vertex's record and the lane within it. Cached
// once per batch, then reused across every attribute slot.
func (pa *CutAssembler) computeOffsets() {
	for v := 0; v < pa.vertsPerPrim; v++ {
		idx := pa.indices[v]
		pa.elemBase[v] = idx.ShrScalar(3).MulScalar(int32(pa.numAttrs))
		pa.elemLane[v] = idx.AndScalar(LaneWidth - 1)
	}
}

// Assemble processes outstanding vertices and, once a batch is ready,
// gathers attribute slot for it. A batch is ready when all lanes hold a
// primitive or the draw has ended; mid-draw shortfalls return false and the
// producer must deliver more vertices.
func (pa *CutAssembler) Assemble(slot int, out []wide.Vec4x8) bool {
	pa.processVerts()

	if pa.numPrimsAssembled != LaneWidth && pa.numRemainingVerts > 0 {
		return false
	}

	// cache load coordinates the first time the batch assembles
	if pa.needOffsets {
		pa.computeOffsets()
		pa.needOffsets = false
	}

	for v := 0; v < pa.vertsPerPrim; v++ {
		elem := pa.elemBase[v].AddScalar(int32(slot))
		out[v] = wide.GatherSlot(pa.recs, elem, pa.elemLane[v])
	}

	return true
}

// AssembleSingle extracts primitive prim of the current batch through the
// cached load coordinates.
func (pa *CutAssembler) AssembleSingle(slot, prim int, out []wide.Vec4) {
	for v := 0; v < pa.vertsPerPrim; v++ {
		elem := pa.elemBase[v][prim] + int32(slot)
		lane := pa.elemLane[v][prim]
		out[v] = pa.recs[elem].Lane(int(lane))
	}
}

// NumPrims returns the primitives banked in the current batch.
func (pa *CutAssembler) NumPrims() int {
	return pa.numPrimsAssembled
}

// bank records the window's vertex indices at the batch's next free lane.
// positions lists the window slots to emit, in output order.
func (pa *CutAssembler) bank(positions ...int) {
	n := pa.numPrimsAssembled
	for i, p := range positions {
		pa.indices[i][n] = int32(pa.vert[p])
	}
	pa.numPrimsAssembled++
}

// Per-topology vertex trackers. Each banks a primitive once its window
// fills, then slides or clears the window. The adjacency trackers come in
// sibling pairs: the plain form keeps all vertices for a geometry stage,
// the NoGS form emits only the inner primitive.

func (pa *CutAssembler) vertPointList(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 1 {
		pa.bank(0)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertLineList(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 2 {
		pa.bank(0, 1)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertLineStrip(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 2 {
		pa.bank(0, 1)

		// slide the window
		pa.vert[0] = pa.vert[1]
		pa.curIndex = 1
	}
}

func (pa *CutAssembler) vertLineListAdj(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 4 {
		pa.bank(0, 1, 2, 3)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertLineListAdjNoGS(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 4 {
		pa.bank(1, 2)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertLineStripAdj(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 4 {
		pa.bank(0, 1, 2, 3)

		pa.vert[0] = pa.vert[1]
		pa.vert[1] = pa.vert[2]
		pa.vert[2] = pa.vert[3]
		pa.curIndex = 3
	}
}

func (pa *CutAssembler) vertLineStripAdjNoGS(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 4 {
		pa.bank(1, 2)

		pa.vert[0] = pa.vert[1]
		pa.vert[1] = pa.vert[2]
		pa.vert[2] = pa.vert[3]
		pa.curIndex = 3
	}
}

func (pa *CutAssembler) vertTriList(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 3 {
		pa.bank(0, 1, 2)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertTriListAdj(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 6 {
		pa.bank(0, 1, 2, 3, 4, 5)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertTriListAdjNoGS(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 6 {
		pa.bank(0, 2, 4)
		pa.curIndex = 0
	}
}

func (pa *CutAssembler) vertTriStrip(index int, finish bool) {
	pa.vert[pa.curIndex] = index
	pa.curIndex++
	if pa.curIndex == 3 {
		if pa.reverseWinding {
			pa.bank(0, 2, 1)
		} else {
			pa.bank(0, 1, 2)
		}

		// slide the window and flip the winding
		pa.vert[0] = pa.vert[1]
		pa.vert[1] = pa.vert[2]
		pa.curIndex = 2
		pa.reverseWinding = !pa.reverseWinding
	}
}

// bankTriStripAdj emits the window's current primitive. The NoGS form folds
// the window down to the inner triangle before banking and restores it
// after, so the caller's rotation sees the window unchanged.
func (pa *CutAssembler) bankTriStripAdj(gsEnabled bool) {
	if !gsEnabled {
		pa.vert[1] = pa.vert[2]
		pa.vert[2] = pa.vert[4]

		pa.bank(0, 1, 2)

		pa.vert[4] = pa.vert[2]
		pa.vert[2] = pa.vert[1]
	} else {
		pa.bank(0, 1, 2, 3, 4, 5)
	}
}

// rotateTriStripAdj advances the six-vertex window by one primitive, using
// the carryover vertex, and flips the winding. Window slot 3 is left for
// the next carryover to fill.
func (pa *CutAssembler) rotateTriStripAdj() {
	var next [maxVertsPerPrim]int
	if pa.reverseWinding {
		next[0] = pa.vert[4]
		next[1] = pa.vert[0]
		next[2] = pa.vert[2]
		next[4] = pa.vert[3]
		next[5] = pa.adjExtraVert
	} else {
		next[0] = pa.vert[2]
		next[1] = pa.adjExtraVert
		next[2] = pa.vert[3]
		next[4] = pa.vert[4]
		next[5] = pa.vert[0]
	}
	pa.vert = next
	pa.reverseWinding = !pa.reverseWinding
}

func (pa *CutAssembler) vertTriStripAdjGS(index int, finish bool) {
	pa.vertTriStripAdj(index, finish, true)
}

func (pa *CutAssembler) vertTriStripAdjNoGS(index int, finish bool) {
	pa.vertTriStripAdj(index, finish, false)
}

// vertTriStripAdj tracks the strip-with-adjacency window. The tracker runs
// one vertex ahead of the primitive it can prove complete: the vertex after
// a primitive's last is its trailing adjacency, so each inner triangle is
// held back until that lookahead arrives, stashed in adjExtraVert. finish
// closes the held primitive when the stream restarts or ends.
func (pa *CutAssembler) vertTriStripAdj(index int, finish bool, gsEnabled bool) {
	// the held primitive's trailing adjacency never arrived; complete it
	// with the carryover vertex itself
	if finish && pa.adjExtraVert != -1 {
		pa.vert[3] = pa.adjExtraVert
		pa.bankTriStripAdj(gsEnabled)
		pa.adjExtraVert = -1
		return
	}

	switch pa.curIndex {
	case 0, 1, 2, 4:
		pa.vert[pa.curIndex] = index
		pa.curIndex++
	case 3:
		pa.vert[5] = index
		pa.curIndex++
	case 5:
		if pa.adjExtraVert == -1 {
			pa.adjExtraVert = index
		} else {
			pa.vert[3] = index
			if !gsEnabled {
				pa.bankTriStripAdj(gsEnabled)
				pa.rotateTriStripAdj()
				pa.adjExtraVert = -1
			} else {
				pa.curIndex++
			}
		}
	case 6:
		if pa.adjExtraVert == -1 {
			panic("prim: strip adjacency lookahead missing")
		}
		pa.bankTriStripAdj(gsEnabled)
		pa.rotateTriStripAdj()
		pa.adjExtraVert = index
		pa.curIndex--
	}
}
