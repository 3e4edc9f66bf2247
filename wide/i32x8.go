package wide

// I32x8 represents 8 int32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
// This type carries gather indices and per-lane primitive IDs.
type I32x8 [8]int32

// SplatI32 creates I32x8 with all elements set to n.
func SplatI32(n int32) I32x8 {
	var result I32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// IotaI32 creates I32x8 with elements 0, 1, 2, ..., 7.
// This is the canonical initial primitive-ID vector for a lane batch.
func IotaI32() I32x8 {
	var result I32x8
	for i := range result {
		result[i] = int32(i)
	}
	return result
}

// Add performs element-wise addition.
// Returns a new I32x8 with v[i] + other[i] for each element.
func (v I32x8) Add(other I32x8) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// AddScalar adds n to each element.
func (v I32x8) AddScalar(n int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + n
	}
	return result
}

// MulScalar multiplies each element by n.
// Used to scale vertex-record indices into element offsets.
func (v I32x8) MulScalar(n int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] * n
	}
	return result
}

// ShrScalar shifts each element right by n bits.
// Vertex index >> 3 yields the record index for a lane width of 8.
func (v I32x8) ShrScalar(n uint) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// AndScalar masks each element with n.
// Vertex index & 7 yields the lane within a record for a lane width of 8.
func (v I32x8) AndScalar(n int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] & n
	}
	return result
}
