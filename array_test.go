package prim

import (
	"errors"
	"testing"

	"github.com/gogpu/prim/wide"
)

// arrayData builds component-major vertex data for numVerts vertices:
// component X of every slot carries the vertex index, Y the slot number,
// W one. Returns the data and its stride in vectors.
func arrayData(numVerts, numAttrs int) ([]wide.F32x8, int) {
	stride := (numVerts + LaneWidth - 1) / LaneWidth
	data := make([]wide.F32x8, numAttrs*4*stride)
	for slot := 0; slot < numAttrs; slot++ {
		for v := 0; v < numVerts; v++ {
			data[(slot*4+0)*stride+v/LaneWidth][v%LaneWidth] = float32(v)
			data[(slot*4+1)*stride+v/LaneWidth][v%LaneWidth] = float32(slot)
			data[(slot*4+3)*stride+v/LaneWidth][v%LaneWidth] = 1
		}
	}
	return data, stride
}

func TestArrayAssembler_TriangleFan(t *testing.T) {
	// a 10-triangle fan around vertex 0, as a triangulator would emit it
	const numPrims = 10
	data, stride := arrayData(12, 1)
	var indices [3][]uint32
	for i := 0; i < numPrims; i++ {
		indices[0] = append(indices[0], 0)
		indices[1] = append(indices[1], uint32(i+1))
		indices[2] = append(indices[2], uint32(i+2))
	}

	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 1, indices, numPrims)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	var got [][]int
	if err := PumpArray(pa, 0, collectPrims(&got)); err != nil {
		t.Fatalf("PumpArray: %v", err)
	}

	want := make([][]int, numPrims)
	for i := range want {
		want[i] = []int{0, i + 1, i + 2}
	}
	checkPrims(t, got, want)
}

func TestArrayAssembler_LineList(t *testing.T) {
	data, stride := arrayData(6, 1)
	indices := [3][]uint32{{0, 2, 4}, {1, 3, 5}}

	pa, err := NewArrayAssembler(TopologyLineList, data, stride, 1, indices, 3)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	var got [][]int
	if err := PumpArray(pa, 0, collectPrims(&got)); err != nil {
		t.Fatalf("PumpArray: %v", err)
	}
	checkPrims(t, got, [][]int{{0, 1}, {2, 3}, {4, 5}})
}

func TestArrayAssembler_MaskedTail(t *testing.T) {
	data, stride := arrayData(9, 1)
	indices := [3][]uint32{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}}

	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 1, indices, 3)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	verts := make([]wide.Vec4x8, 3)
	if !pa.Assemble(0, verts) {
		t.Fatal("Assemble = false with 3 primitives pending")
	}
	if n := pa.NumPrims(); n != 3 {
		t.Fatalf("NumPrims = %d, want 3", n)
	}
	for v := 0; v < 3; v++ {
		for lane := 3; lane < LaneWidth; lane++ {
			if p := verts[v].Lane(lane); p != (wide.Vec4{}) {
				t.Errorf("vertex %d dead lane %d = %v, want zero", v, lane, p)
			}
		}
	}
}

func TestArrayAssembler_NextPrimSlides(t *testing.T) {
	const numPrims = 10
	data, stride := arrayData(12, 1)
	var indices [3][]uint32
	for i := 0; i < numPrims; i++ {
		indices[0] = append(indices[0], 0)
		indices[1] = append(indices[1], uint32(i+1))
		indices[2] = append(indices[2], uint32(i+2))
	}

	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 1, indices, numPrims)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	verts := make([]wide.Vec4x8, 3)
	pa.Assemble(0, verts)
	if !pa.NextPrim() {
		t.Fatal("NextPrim = false with 2 primitives left")
	}
	if n := pa.NumPrims(); n != 2 {
		t.Fatalf("NumPrims after slide = %d, want 2", n)
	}

	single := make([]wide.Vec4, 3)
	pa.AssembleSingle(0, 0, single)
	if single[1][0] != 9 || single[2][0] != 10 {
		t.Errorf("first primitive after slide = (%v, %v, %v), want fan triangle (0, 9, 10)",
			single[0][0], single[1][0], single[2][0])
	}

	pa.Assemble(0, verts)
	if pa.NextPrim() {
		t.Error("NextPrim = true after the final batch")
	}
	if pa.HasWork() {
		t.Error("HasWork after all primitives consumed")
	}
}

func TestArrayAssembler_SharedPrimID(t *testing.T) {
	data, stride := arrayData(3, 1)
	indices := [3][]uint32{{0}, {1}, {2}}

	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 1, indices, 1)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	ids := pa.PrimID(7)
	for lane := 0; lane < LaneWidth; lane++ {
		if ids[lane] != 7 {
			t.Fatalf("lane %d ID = %d, want 7 in every lane", lane, ids[lane])
		}
	}
}

func TestArrayAssembler_AssembleSingle(t *testing.T) {
	data, stride := arrayData(9, 2)
	indices := [3][]uint32{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}}

	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 2, indices, 3)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	verts := make([]wide.Vec4x8, 3)
	pa.Assemble(1, verts)

	single := make([]wide.Vec4, 3)
	for prim := 0; prim < 3; prim++ {
		pa.AssembleSingle(1, prim, single)
		for v := 0; v < 3; v++ {
			if single[v] != verts[v].Lane(prim) {
				t.Errorf("single primitive %d vertex %d = %v, batch lane holds %v",
					prim, v, single[v], verts[v].Lane(prim))
			}
			if single[v][1] != 1 {
				t.Errorf("single primitive %d vertex %d Y = %v, want slot marker 1", prim, v, single[v][1])
			}
		}
	}
}

func TestArrayAssembler_Validation(t *testing.T) {
	data, stride := arrayData(6, 1)
	indices := [3][]uint32{{0, 2, 4}, {1, 3, 5}}

	tests := []struct {
		name     string
		topology Topology
		data     []wide.F32x8
		stride   int
		numAttrs int
		indices  [3][]uint32
		numPrims int
		wantErr  error
	}{
		{"strip topology", TopologyTriangleStrip, data, stride, 1, indices, 3, ErrUnsupportedTopology},
		{"adjacency topology", TopologyLineListAdj, data, stride, 1, indices, 3, ErrUnsupportedTopology},
		{"zero attrs", TopologyLineList, data, stride, 0, indices, 3, ErrBadAttributeCount},
		{"short data", TopologyLineList, data[:3], stride, 1, indices, 3, ErrBadAttributeCount},
		{"negative prims", TopologyLineList, data, stride, 1, indices, -1, ErrBadVertexCount},
		{"short index array", TopologyLineList, data, stride, 1, indices, 4, ErrBadVertexCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArrayAssembler(tt.topology, tt.data, tt.stride, tt.numAttrs, tt.indices, tt.numPrims)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestArrayAssembler_StreamMethodsPanic(t *testing.T) {
	data, stride := arrayData(3, 1)
	pa, err := NewArrayAssembler(TopologyTriangleList, data, stride, 1, [3][]uint32{{0}, {1}, {2}}, 1)
	if err != nil {
		t.Fatalf("NewArrayAssembler: %v", err)
	}

	tests := []struct {
		name string
		call func()
	}{
		{"Reset", func() { pa.Reset() }},
		{"NextVsOutput", func() { pa.NextVsOutput() }},
		{"NextVsIndices", func() { pa.NextVsIndices() }},
		{"NextStreamOutput", func() { pa.NextStreamOutput() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.call()
		})
	}
}
