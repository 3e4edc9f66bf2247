package prim

import (
	"fmt"

	"github.com/gogpu/prim/wide"
)

// ArrayAssembler assembles primitives whose connectivity was computed
// outside the vertex pipeline, such as tessellated or triangulated meshes.
// There is no stream to track: the index arrays already name every
// primitive's vertices, so each batch is a masked gather over the next
// LaneWidth entries.
//
// Vertex data is component-major. Attribute slot a occupies
// data[a*4*stride : (a+1)*4*stride], four components of stride vectors
// each, with vertex v at lane v%8 of vector v/8 inside its component span.
// Every index must address a vertex inside data; lanes past the final
// primitive are masked and never read.
type ArrayAssembler struct {
	data            []wide.F32x8
	strideInVectors int
	numAttrs        int
	numPrims        int
	indices         [3][]uint32
	vertsPerPrim    int
	topology        Topology
}

// NewArrayAssembler binds index arrays over component-major vertex data.
// indices holds one array per primitive vertex position; only the first
// VertsPerPrim arrays are read, and each must hold numPrims entries. Only
// the list topologies make sense here: strip and adjacency connectivity is
// a property of a vertex stream, which an index array has already flattened.
func NewArrayAssembler(topology Topology, data []wide.F32x8, strideInVectors, numAttrs int, indices [3][]uint32, numPrims int) (*ArrayAssembler, error) {
	pa := &ArrayAssembler{
		data:            data,
		strideInVectors: strideInVectors,
		numAttrs:        numAttrs,
		numPrims:        numPrims,
		indices:         indices,
		topology:        topology,
	}

	switch topology {
	case TopologyPointList:
		pa.vertsPerPrim = 1
	case TopologyLineList:
		pa.vertsPerPrim = 2
	case TopologyTriangleList:
		pa.vertsPerPrim = 3
	default:
		return nil, fmt.Errorf("%w: %s has no array form", ErrUnsupportedTopology, topology)
	}

	if numAttrs < 1 || numAttrs > maxAttributes {
		return nil, fmt.Errorf("%w: %d", ErrBadAttributeCount, numAttrs)
	}
	if len(data) < numAttrs*4*strideInVectors {
		return nil, fmt.Errorf("%w: data holds %d vectors, %d attributes need %d",
			ErrBadAttributeCount, len(data), numAttrs, numAttrs*4*strideInVectors)
	}
	if numPrims < 0 {
		return nil, fmt.Errorf("%w: %d primitives", ErrBadVertexCount, numPrims)
	}
	for i := 0; i < pa.vertsPerPrim; i++ {
		if len(indices[i]) < numPrims {
			return nil, fmt.Errorf("%w: index array %d holds %d entries, draw needs %d",
				ErrBadVertexCount, i, len(indices[i]), numPrims)
		}
	}

	return pa, nil
}

// component returns component c of attribute slot, one float per vertex.
func (pa *ArrayAssembler) component(slot, c int) []wide.F32x8 {
	base := (slot*4 + c) * pa.strideInVectors
	return pa.data[base : base+pa.strideInVectors]
}

// HasWork reports whether primitives remain to assemble.
func (pa *ArrayAssembler) HasWork() bool {
	return pa.numPrims != 0
}

// Assemble gathers attribute slot for the next batch of primitives. Inactive
// lanes gather nothing and hold zero.
func (pa *ArrayAssembler) Assemble(slot int, out []wide.Vec4x8) bool {
	n := pa.NumPrims()
	if n == 0 {
		return false
	}
	mask := wide.MaskFirstN(n)

	for i := 0; i < pa.vertsPerPrim; i++ {
		var idx wide.I32x8
		for k := 0; k < n; k++ {
			idx[k] = int32(pa.indices[i][k])
		}

		out[i].X = wide.GatherF32(pa.component(slot, 0), idx, mask)
		out[i].Y = wide.GatherF32(pa.component(slot, 1), idx, mask)
		out[i].Z = wide.GatherF32(pa.component(slot, 2), idx, mask)
		out[i].W = wide.GatherF32(pa.component(slot, 3), idx, mask)
	}

	return true
}

// AssembleSingle extracts primitive prim of the current batch.
func (pa *ArrayAssembler) AssembleSingle(slot, prim int, out []wide.Vec4) {
	for i := 0; i < pa.vertsPerPrim; i++ {
		v := int(pa.indices[i][prim])
		for c := 0; c < 4; c++ {
			span := pa.component(slot, c)
			out[i][c] = span[v/LaneWidth][v%LaneWidth]
		}
	}
}

// NextPrim consumes the current batch, slides the index cursors past it,
// and reports whether work remains.
func (pa *ArrayAssembler) NextPrim() bool {
	n := pa.NumPrims()
	pa.numPrims -= n
	for i := 0; i < pa.vertsPerPrim; i++ {
		pa.indices[i] = pa.indices[i][n:]
	}
	return pa.HasWork()
}

// NumPrims returns the primitives in the current batch.
func (pa *ArrayAssembler) NumPrims() int {
	if pa.numPrims < LaneWidth {
		return pa.numPrims
	}
	return LaneWidth
}

// PrimID returns start in every lane. Array connectivity descends from a
// single upstream primitive, so the whole batch shares its ID.
func (pa *ArrayAssembler) PrimID(start int32) wide.I32x8 {
	return wide.SplatI32(start)
}

// Reset panics: the index cursors only move forward.
func (pa *ArrayAssembler) Reset() {
	panic("prim: array assembler cannot rewind")
}

// VertsPerPrim returns the vertex positions per assembled primitive.
func (pa *ArrayAssembler) VertsPerPrim() int { return pa.vertsPerPrim }

// Topology returns the topology the assembler was built for.
func (pa *ArrayAssembler) Topology() Topology { return pa.topology }

// NextVsOutput panics: the vertex data is external and read-only.
func (pa *ArrayAssembler) NextVsOutput() []wide.Vec4x8 {
	panic("prim: array assembler reads external vertex data")
}

// NextVsIndices panics: array connectivity carries no restart bits.
func (pa *ArrayAssembler) NextVsIndices() *wide.Mask8 {
	panic("prim: array assembler reads external vertex data")
}

// NextStreamOutput panics: the vertex data is external and read-only.
func (pa *ArrayAssembler) NextStreamOutput() ([]wide.Vec4x8, bool) {
	panic("prim: array assembler reads external vertex data")
}

// IsVertexStoreFull is always false: there is no store to fill.
func (pa *ArrayAssembler) IsVertexStoreFull() bool { return false }
