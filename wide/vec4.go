package wide

// Vec4 is a single vertex position or attribute: 4 components (x, y, z, w).
// It is the scalar counterpart of one lane of a Vec4x8.
type Vec4 [4]float32

// Vec4x8 is one vertex attribute slot across 8 lanes in SoA layout:
// all 8 x components, then all 8 y, z, w components. A vertex record is a
// sequence of Vec4x8 values, one per attribute slot.
type Vec4x8 struct {
	X, Y, Z, W F32x8
}

// Lane extracts the 4 components of lane i as a single vertex.
func (v Vec4x8) Lane(i int) Vec4 {
	return Vec4{v.X[i], v.Y[i], v.Z[i], v.W[i]}
}

// SetLane stores the 4 components of p into lane i.
func (v *Vec4x8) SetLane(i int, p Vec4) {
	v.X[i] = p[0]
	v.Y[i] = p[1]
	v.Z[i] = p[2]
	v.W[i] = p[3]
}

// Shuffle describes an exact cross-lane permutation over up to three source
// vectors. For each output lane k, Src[k] selects the source vector and
// Lane[k] the lane within it. A Shuffle moves data; it never computes.
type Shuffle struct {
	Src  [8]uint8
	Lane [8]uint8
}

// Apply2 applies the permutation over two source vectors.
// Src values must be 0 or 1.
func (s Shuffle) Apply2(a, b Vec4x8) Vec4x8 {
	return s.Apply3(a, b, b)
}

// Apply3 applies the permutation over three source vectors.
// Src values must be 0, 1 or 2.
func (s Shuffle) Apply3(a, b, c Vec4x8) Vec4x8 {
	var result Vec4x8
	for k := 0; k < 8; k++ {
		src := &a
		switch s.Src[k] {
		case 1:
			src = &b
		case 2:
			src = &c
		}
		l := s.Lane[k]
		result.X[k] = src.X[l]
		result.Y[k] = src.Y[l]
		result.Z[k] = src.Z[l]
		result.W[k] = src.W[l]
	}
	return result
}

// GatherSlot performs an indexed load across vertex-record storage: for each
// lane k it reads recs[elem[k]] and extracts lane lane[k]. elem indexes the
// flat Vec4x8 storage (record index scaled by attribute count, plus slot);
// lane selects the vertex within the record. All 8 lanes load unconditionally,
// so every element index must be in range even for stale lanes.
func GatherSlot(recs []Vec4x8, elem, lane I32x8) Vec4x8 {
	var result Vec4x8
	for k := 0; k < 8; k++ {
		src := &recs[elem[k]]
		l := lane[k]
		result.X[k] = src.X[l]
		result.Y[k] = src.Y[l]
		result.Z[k] = src.Z[l]
		result.W[k] = src.W[l]
	}
	return result
}

// GatherF32 performs a masked indexed load from a flat component region laid
// out as consecutive 8-lane vectors: element i lives at vecs[i/8] lane i%8.
// Inactive lanes load zero and never touch the region, so gathers cannot read
// past the valid element count.
func GatherF32(vecs []F32x8, idx I32x8, mask Mask8) F32x8 {
	var result F32x8
	for k := 0; k < 8; k++ {
		if !mask.Bit(k) {
			continue
		}
		i := idx[k]
		result[k] = vecs[i>>3][i&7]
	}
	return result
}
