package wide

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
// One F32x8 holds a single attribute component across a full lane batch.
type F32x8 [8]float32

// SplatF32 creates F32x8 with all elements set to n.
// This is useful for initializing constants or broadcasting a single value.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// IotaF32 creates F32x8 with elements 0, 1, 2, ..., 7.
// Useful for synthesizing per-lane vertex data such as sequential indices.
func IotaF32() F32x8 {
	var result F32x8
	for i := range result {
		result[i] = float32(i)
	}
	return result
}

// Add performs element-wise addition.
// Returns a new F32x8 with v[i] + other[i] for each element.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// AddScalar adds n to each element.
func (v F32x8) AddScalar(n float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + n
	}
	return result
}

// Mul performs element-wise multiplication.
// Returns a new F32x8 with v[i] * other[i] for each element.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulScalar multiplies each element by n.
func (v F32x8) MulScalar(n float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * n
	}
	return result
}
