package prim

import "github.com/gogpu/prim/wide"

// vertexStore is the vertex arena behind every assembler a factory hands
// out. Records are stored attribute-major: record r occupies
// data[r*numAttrs : r*numAttrs+numAttrs], one vector per attribute slot.
// Each record carries a mask of restart bits, one per lane.
//
// The store is a plain arena for the stream assembler and a ring for the
// cut-aware assembler. Cursor arithmetic lives with the assemblers, not
// here.
type vertexStore struct {
	data []wide.Vec4x8
	cuts []wide.Mask8
}

func newVertexStore() *vertexStore {
	return &vertexStore{
		data: make([]wide.Vec4x8, storeRecords*maxAttributes),
		cuts: make([]wide.Mask8, storeRecords),
	}
}

// reset clears the restart bits for a new draw. Record data is left in
// place; stale lanes are masked off or overwritten by the consumers.
func (vs *vertexStore) reset() {
	for i := range vs.cuts {
		vs.cuts[i] = 0
	}
}
