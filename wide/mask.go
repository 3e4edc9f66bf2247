package wide

// Mask8 holds one bit per lane of a lane batch.
// Bit i set means lane i is marked: a restart boundary in a vertex stream,
// or an active lane in a masked gather.
type Mask8 uint8

// MaskFirstN creates a Mask8 with the first n bits set.
// Lanes at or beyond n are inactive. n is clamped to [0, 8].
func MaskFirstN(n int) Mask8 {
	if n <= 0 {
		return 0
	}
	if n >= 8 {
		return 0xff
	}
	return Mask8(1<<uint(n)) - 1
}

// Bit reports whether bit i is set.
func (m Mask8) Bit(i int) bool {
	return m&(1<<uint(i)) != 0
}

// SetBit sets bit i.
func (m *Mask8) SetBit(i int) {
	*m |= 1 << uint(i)
}
