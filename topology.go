package prim

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Topology identifies how a vertex stream is interpreted as primitives.
type Topology uint32

// Supported topologies. The adjacency variants carry extra neighbor vertices
// consumed only by a geometry stage; the neighbors are never rasterized.
const (
	TopologyUnknown Topology = iota
	TopologyPointList
	TopologyLineList
	TopologyLineStrip
	TopologyLineListAdj
	TopologyLineStripAdj
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleListAdj
	TopologyTriangleStripAdj
)

const unknownStr = "Unknown"

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TopologyPointList:
		return "PointList"
	case TopologyLineList:
		return "LineList"
	case TopologyLineStrip:
		return "LineStrip"
	case TopologyLineListAdj:
		return "LineListAdj"
	case TopologyLineStripAdj:
		return "LineStripAdj"
	case TopologyTriangleList:
		return "TriangleList"
	case TopologyTriangleStrip:
		return "TriangleStrip"
	case TopologyTriangleListAdj:
		return "TriangleListAdj"
	case TopologyTriangleStripAdj:
		return "TriangleStripAdj"
	default:
		return unknownStr
	}
}

// HasAdjacency reports whether the topology carries neighbor vertices.
func (t Topology) HasAdjacency() bool {
	switch t {
	case TopologyLineListAdj, TopologyLineStripAdj, TopologyTriangleListAdj, TopologyTriangleStripAdj:
		return true
	default:
		return false
	}
}

// VertsPerPrim returns the number of vertices one assembled primitive
// references. With includeAdj, adjacency neighbors are counted; without it,
// only the vertices the rasterizer sees. A geometry stage consumes the full
// set, so assemblers use includeAdj = GS enabled.
func (t Topology) VertsPerPrim(includeAdj bool) int {
	var n int
	switch t {
	case TopologyPointList:
		n = 1
	case TopologyLineList, TopologyLineStrip:
		n = 2
	case TopologyTriangleList, TopologyTriangleStrip:
		n = 3
	case TopologyLineListAdj, TopologyLineStripAdj:
		n = 4
	case TopologyTriangleListAdj, TopologyTriangleStripAdj:
		n = 6
	default:
		return 0
	}
	if !includeAdj {
		switch n {
		case 4:
			n = 2
		case 6:
			n = 3
		}
	}
	return n
}

// PrimCount returns the number of primitives a stream of numVerts vertices
// yields under t. Incomplete trailing primitives do not count.
func (t Topology) PrimCount(numVerts int) int {
	if numVerts < 0 {
		return 0
	}
	switch t {
	case TopologyPointList:
		return numVerts
	case TopologyLineList:
		return numVerts / 2
	case TopologyLineStrip:
		if numVerts < 2 {
			return 0
		}
		return numVerts - 1
	case TopologyTriangleList:
		return numVerts / 3
	case TopologyTriangleStrip:
		if numVerts < 3 {
			return 0
		}
		return numVerts - 2
	case TopologyLineListAdj:
		return numVerts / 4
	case TopologyLineStripAdj:
		if numVerts < 4 {
			return 0
		}
		return numVerts - 3
	case TopologyTriangleListAdj:
		return numVerts / 6
	case TopologyTriangleStripAdj:
		if numVerts < 6 {
			return 0
		}
		return (numVerts - 4) / 2
	default:
		return 0
	}
}

// TopologyFromGPU converts a WebGPU primitive topology. The WebGPU enum has
// no adjacency variants; those are constructed directly via the Topology
// constants.
func TopologyFromGPU(t gputypes.PrimitiveTopology) (Topology, error) {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return TopologyPointList, nil
	case gputypes.PrimitiveTopologyLineList:
		return TopologyLineList, nil
	case gputypes.PrimitiveTopologyLineStrip:
		return TopologyLineStrip, nil
	case gputypes.PrimitiveTopologyTriangleList:
		return TopologyTriangleList, nil
	case gputypes.PrimitiveTopologyTriangleStrip:
		return TopologyTriangleStrip, nil
	default:
		return TopologyUnknown, fmt.Errorf("%w: gputypes topology %d", ErrUnsupportedTopology, t)
	}
}
