// Package wide provides SIMD-friendly lane-vector types for primitive assembly.
//
// This package implements wide types (F32x8, I32x8, Vec4x8) that are designed
// to enable Go compiler auto-vectorization. By using fixed-size arrays and
// simple loops, these types allow the compiler to generate SIMD instructions
// on supported architectures (SSE, AVX, NEON).
//
// # Wide Types
//
// F32x8: 8 float32 values, one attribute component across 8 lanes.
// I32x8: 8 int32 values for index arithmetic and primitive IDs.
// Mask8: one bit per lane, used for restart marks and gather activity.
// Vec4x8: a 4-component vector (x,y,z,w) across 8 lanes in SoA layout,
// one vertex attribute slot for a full lane batch.
//
// # Lanes and Records
//
// The assembler processes 8 vertices at a time (one lane batch). A vertex
// record is a sequence of Vec4x8 values, one per attribute slot. Vec4x8.Lane
// extracts a single vertex's 4 components; Shuffle applies an exact
// cross-lane permutation; the Gather helpers perform indexed loads across
// records or flat component regions.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Permutations and gathers move data; they never compute
package wide
