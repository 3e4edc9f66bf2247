package wide

import "testing"

// seqVec4x8 fills a Vec4x8 so that lane i holds (base+i, base+i+0.25,
// base+i+0.5, base+i+0.75). Lane contents stay distinguishable per component.
func seqVec4x8(base float32) Vec4x8 {
	var v Vec4x8
	for i := 0; i < 8; i++ {
		f := base + float32(i)
		v.SetLane(i, Vec4{f, f + 0.25, f + 0.5, f + 0.75})
	}
	return v
}

func TestVec4x8_Lane(t *testing.T) {
	v := seqVec4x8(100)
	for i := 0; i < 8; i++ {
		f := 100 + float32(i)
		want := Vec4{f, f + 0.25, f + 0.5, f + 0.75}
		if got := v.Lane(i); got != want {
			t.Errorf("Lane(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestShuffle_Apply2(t *testing.T) {
	a := seqVec4x8(0)
	b := seqVec4x8(8)

	// Even lanes from a, odd lanes from b, lanes reversed within each source.
	s := Shuffle{
		Src:  [8]uint8{0, 1, 0, 1, 0, 1, 0, 1},
		Lane: [8]uint8{7, 6, 5, 4, 3, 2, 1, 0},
	}
	got := s.Apply2(a, b)

	for k := 0; k < 8; k++ {
		src := a
		if k%2 == 1 {
			src = b
		}
		want := src.Lane(7 - k)
		if got.Lane(k) != want {
			t.Errorf("Apply2 lane %d = %v, want %v", k, got.Lane(k), want)
		}
	}
}

func TestShuffle_Apply3(t *testing.T) {
	a := seqVec4x8(0)
	b := seqVec4x8(8)
	c := seqVec4x8(16)

	// First triangle-vertex shuffle for a triangle list: vertices 0,3,6,...,21.
	s := Shuffle{
		Src:  [8]uint8{0, 0, 0, 1, 1, 1, 2, 2},
		Lane: [8]uint8{0, 3, 6, 1, 4, 7, 2, 5},
	}
	got := s.Apply3(a, b, c)

	want := F32x8{0, 3, 6, 9, 12, 15, 18, 21}
	if got.X != want {
		t.Errorf("Apply3().X = %v, want %v", got.X, want)
	}
}

func TestGatherSlot(t *testing.T) {
	// Two records of three attribute slots each.
	const attrs = 3
	recs := make([]Vec4x8, 2*attrs)
	for r := 0; r < 2; r++ {
		for s := 0; s < attrs; s++ {
			recs[r*attrs+s] = seqVec4x8(float32(100*r + 10*s))
		}
	}

	// Gather slot 1 for vertices 0, 9, 1, 8, 2, 15, 3, 14.
	verts := I32x8{0, 9, 1, 8, 2, 15, 3, 14}
	elem := verts.ShrScalar(3).MulScalar(attrs).AddScalar(1)
	lane := verts.AndScalar(7)

	got := GatherSlot(recs, elem, lane)
	for k, v := range verts {
		rec := v >> 3
		want := recs[rec*attrs+1].Lane(int(v & 7))
		if got.Lane(k) != want {
			t.Errorf("GatherSlot lane %d (vertex %d) = %v, want %v", k, v, got.Lane(k), want)
		}
	}
}

func TestGatherF32(t *testing.T) {
	// A flat component region of 16 elements in two 8-lane vectors.
	vecs := []F32x8{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{8, 9, 10, 11, 12, 13, 14, 15},
	}

	idx := I32x8{15, 0, 9, 3, 12, 700, 800, 900} // inactive lanes may hold junk
	got := GatherF32(vecs, idx, MaskFirstN(5))

	want := F32x8{15, 0, 9, 3, 12, 0, 0, 0}
	if got != want {
		t.Errorf("GatherF32() = %v, want %v", got, want)
	}
}
