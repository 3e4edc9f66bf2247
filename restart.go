package prim

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/prim/wide"
)

// IndexElement constrains the element types an index stream can use.
type IndexElement interface {
	~uint16 | ~uint32
}

// RestartSentinel returns the primitive-restart sentinel for an index
// format: the all-ones index value of that width.
func RestartSentinel(format gputypes.IndexFormat) (uint32, error) {
	switch format {
	case gputypes.IndexFormatUint16:
		return 0xFFFF, nil
	case gputypes.IndexFormatUint32:
		return 0xFFFFFFFF, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownIndexFormat, format)
	}
}

// RestartBits returns the restart mask for one lane batch of indices
// beginning at base. Indices past the end of the stream contribute no bits,
// so a short final batch masks clean.
func RestartBits[E IndexElement](indices []E, base int, sentinel uint32) wide.Mask8 {
	var m wide.Mask8
	for k := 0; k < LaneWidth; k++ {
		i := base + k
		if i >= len(indices) {
			break
		}
		if uint32(indices[i]) == sentinel {
			m.SetBit(k)
		}
	}
	return m
}

// MarkRestarts scans a whole index stream and builds one restart mask per
// lane batch. Producers feeding an assembler record by record can call
// RestartBits incrementally instead.
func MarkRestarts[E IndexElement](indices []E, sentinel uint32) []wide.Mask8 {
	n := (len(indices) + LaneWidth - 1) / LaneWidth
	masks := make([]wide.Mask8, n)
	for r := 0; r < n; r++ {
		masks[r] = RestartBits(indices, r*LaneWidth, sentinel)
	}
	return masks
}
