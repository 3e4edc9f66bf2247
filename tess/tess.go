// Package tess triangulates polygons into meshes the array assembler can
// draw. It wraps ear clipping and lays the results out component-major, so
// tessellated geometry enters the pipeline the same way any other indexed
// primitive batch does.
package tess

import (
	"errors"

	"github.com/mmp/earcut-go"

	"github.com/gogpu/prim"
	"github.com/gogpu/prim/wide"
)

// ErrDegenerate indicates a polygon without a usable outer ring.
var ErrDegenerate = errors.New("tess: polygon outer ring needs at least 3 vertices")

// Mesh is triangulated geometry in the component-major layout the array
// assembler gathers from: one position attribute of four component spans,
// Stride vectors each, with w fixed to one.
type Mesh struct {
	Data     []wide.F32x8
	Stride   int
	Indices  [3][]uint32
	NumVerts int
	NumPrims int
}

// Triangulate ear-clips a polygon into a Mesh. rings holds the outer ring
// first and any holes after it; collinear input can triangulate to nothing,
// which yields a valid empty mesh.
func Triangulate(rings [][][2]float64) (*Mesh, error) {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return nil, ErrDegenerate
	}

	poly := earcut.Polygon{Rings: make([][]earcut.Vertex, len(rings))}
	for r, ring := range rings {
		vs := make([]earcut.Vertex, len(ring))
		for i, p := range ring {
			vs[i].P = p
		}
		poly.Rings[r] = vs
	}

	tris := earcut.Triangulate(poly)

	m := &Mesh{}
	seen := make(map[[2]float64]uint32)
	var positions [][2]float64
	index := func(p [2]float64) uint32 {
		if i, ok := seen[p]; ok {
			return i
		}
		i := uint32(len(positions))
		seen[p] = i
		positions = append(positions, p)
		return i
	}

	for _, tri := range tris {
		for i, v := range tri.Vertices {
			m.Indices[i] = append(m.Indices[i], index(v.P))
		}
	}
	m.NumPrims = len(tris)
	m.NumVerts = len(positions)

	m.Stride = (m.NumVerts + prim.LaneWidth - 1) / prim.LaneWidth
	if m.Stride == 0 {
		m.Stride = 1
	}
	m.Data = make([]wide.F32x8, 4*m.Stride)
	for v, p := range positions {
		m.Data[0*m.Stride+v/prim.LaneWidth][v%prim.LaneWidth] = float32(p[0])
		m.Data[1*m.Stride+v/prim.LaneWidth][v%prim.LaneWidth] = float32(p[1])
		m.Data[3*m.Stride+v/prim.LaneWidth][v%prim.LaneWidth] = 1
	}

	return m, nil
}

// Assembler binds the mesh to a fresh array assembler. Each assembler walks
// the mesh once; bind again to draw it again.
func (m *Mesh) Assembler() (*prim.ArrayAssembler, error) {
	return prim.NewArrayAssembler(prim.TopologyTriangleList, m.Data, m.Stride, 1, m.Indices, m.NumPrims)
}
