package prim

import "github.com/gogpu/prim/wide"

// Permutation tables for the assembly steps. Each table names, per output
// lane, the source record (0 = oldest banked record) and the lane within it.
// List batches bank their records at fixed indices because the counter
// resets every cycle; strip batches read the previous and current record.
var (
	// Triangle list: batch verts 0..23 over three records.
	triListV0 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 1, 1, 1, 2, 2},
		Lane: [8]uint8{0, 3, 6, 1, 4, 7, 2, 5},
	}
	triListV1 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 1, 1, 2, 2, 2},
		Lane: [8]uint8{1, 4, 7, 2, 5, 0, 3, 6},
	}
	triListV2 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 1, 1, 1, 2, 2, 2},
		Lane: [8]uint8{2, 5, 0, 3, 6, 1, 4, 7},
	}

	// Triangle strip: primitive k winds (k, k+1, k+2) when k is even and
	// (k+1, k, k+2) when odd, over the previous and current record.
	triStripV0 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 0, 0, 0, 1},
		Lane: [8]uint8{0, 2, 2, 4, 4, 6, 6, 0},
	}
	triStripV1 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 0, 0, 0, 0},
		Lane: [8]uint8{1, 1, 3, 3, 5, 5, 7, 7},
	}
	triStripV2 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 0, 0, 1, 1},
		Lane: [8]uint8{2, 3, 4, 5, 6, 7, 0, 1},
	}

	// Line list: batch verts 0..15 over two records.
	lineListV0 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 1, 1, 1, 1},
		Lane: [8]uint8{0, 2, 4, 6, 0, 2, 4, 6},
	}
	lineListV1 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 1, 1, 1, 1},
		Lane: [8]uint8{1, 3, 5, 7, 1, 3, 5, 7},
	}

	// Line strip: the leading vertex is the previous record unchanged; the
	// trailing vertex shifts one lane, borrowing lane 0 of the current.
	lineStripV1 = wide.Shuffle{
		Src:  [8]uint8{0, 0, 0, 0, 0, 0, 0, 1},
		Lane: [8]uint8{1, 2, 3, 4, 5, 6, 7, 0},
	}
)

// vertLane returns local vertex v of a two-record window: vertices 0..7
// live in record a, 8..15 in record b.
func vertLane(a, b wide.Vec4x8, v int) wide.Vec4 {
	if v < LaneWidth {
		return a.Lane(v)
	}
	return b.Lane(v - LaneWidth)
}

// Point list: every record is a full batch, identity permutation.

func paPointList0(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	out[0] = pa.simdVector(pa.cur, slot)

	pa.setNext(paPointList0, paPointListSingle0, 0, LaneWidth, true)
	return true
}

func paPointListSingle0(pa *StreamAssembler, slot, prim int, out []wide.Vec4) {
	out[0] = pa.simdVector(pa.cur, slot).Lane(prim)
}

// Line list: two fetched records yield eight lines.

func paLineList0(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	pa.setNext(paLineList1, paLineListSingle0, 0, 0, false)
	return false
}

func paLineList1(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	a := pa.simdVector(pa.cur-1, slot)
	b := pa.simdVector(pa.cur, slot)
	out[0] = lineListV0.Apply2(a, b)
	out[1] = lineListV1.Apply2(a, b)

	pa.setNext(paLineList0, paLineListSingle0, 0, LaneWidth, true)
	return true
}

func paLineListSingle0(pa *StreamAssembler, slot, prim int, out []wide.Vec4) {
	a := pa.simdVector(pa.cur-1, slot)
	b := pa.simdVector(pa.cur, slot)
	out[0] = vertLane(a, b, 2*prim)
	out[1] = vertLane(a, b, 2*prim+1)
}

// Line strip: after the first record, every record closes eight more lines.

func paLineStrip0(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	pa.setNext(paLineStrip1, paLineStripSingle0, 0, 0, false)
	return false
}

func paLineStrip1(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	a := pa.simdVector(pa.prev, slot)
	b := pa.simdVector(pa.cur, slot)
	out[0] = a
	out[1] = lineStripV1.Apply2(a, b)

	pa.setNext(paLineStrip1, paLineStripSingle0, 0, LaneWidth, false)
	return true
}

func paLineStripSingle0(pa *StreamAssembler, slot, prim int, out []wide.Vec4) {
	a := pa.simdVector(pa.prev, slot)
	b := pa.simdVector(pa.cur, slot)
	out[0] = vertLane(a, b, prim)
	out[1] = vertLane(a, b, prim+1)
}

// Triangle list: three fetched records yield eight triangles.

func paTriList0(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	pa.setNext(paTriList1, paTriListSingle0, 0, 0, false)
	return false
}

func paTriList1(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	pa.setNext(paTriList2, paTriListSingle0, 0, 0, false)
	return false
}

func paTriList2(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	a := pa.simdVector(pa.cur-2, slot)
	b := pa.simdVector(pa.cur-1, slot)
	c := pa.simdVector(pa.cur, slot)
	out[0] = triListV0.Apply3(a, b, c)
	out[1] = triListV1.Apply3(a, b, c)
	out[2] = triListV2.Apply3(a, b, c)

	pa.setNext(paTriList0, paTriListSingle0, 0, LaneWidth, true)
	return true
}

func paTriListSingle0(pa *StreamAssembler, slot, prim int, out []wide.Vec4) {
	for i := 0; i < 3; i++ {
		v := 3*prim + i
		out[i] = pa.simdVector(pa.cur-2+v/LaneWidth, slot).Lane(v % LaneWidth)
	}
}

// Triangle strip: after the first record, every record closes eight more
// triangles, alternating winding so all face the same way.

func paTriStrip0(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	pa.setNext(paTriStrip1, paTriStripSingle0, 0, 0, false)
	return false
}

func paTriStrip1(pa *StreamAssembler, slot int, out []wide.Vec4x8) bool {
	a := pa.simdVector(pa.prev, slot)
	b := pa.simdVector(pa.cur, slot)
	out[0] = triStripV0.Apply2(a, b)
	out[1] = triStripV1.Apply2(a, b)
	out[2] = triStripV2.Apply2(a, b)

	pa.setNext(paTriStrip1, paTriStripSingle0, 0, LaneWidth, false)
	return true
}

func paTriStripSingle0(pa *StreamAssembler, slot, prim int, out []wide.Vec4) {
	a := pa.simdVector(pa.prev, slot)
	b := pa.simdVector(pa.cur, slot)
	if prim%2 == 0 {
		out[0] = vertLane(a, b, prim)
		out[1] = vertLane(a, b, prim+1)
	} else {
		out[0] = vertLane(a, b, prim+1)
		out[1] = vertLane(a, b, prim)
	}
	out[2] = vertLane(a, b, prim+2)
}
