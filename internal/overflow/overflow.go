// Package overflow provides unsigned arithmetic that reports overflow
// instead of wrapping silently. The upload pass uses it to guard
// kernel-buffer offset accounting.
package overflow

import "math/bits"

// Add32 returns a+b and whether the sum overflowed.
func Add32(a, b uint32) (uint32, bool) {
	sum, carry := bits.Add32(a, b, 0)
	return sum, carry != 0
}

// Sub32 returns a-b and whether the difference underflowed.
func Sub32(a, b uint32) (uint32, bool) {
	diff, borrow := bits.Sub32(a, b, 0)
	return diff, borrow != 0
}

// Mul32 returns a*b and whether the product overflowed.
func Mul32(a, b uint32) (uint32, bool) {
	hi, lo := bits.Mul32(a, b)
	return lo, hi != 0
}

// Add64 returns a+b and whether the sum overflowed.
func Add64(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry != 0
}

// Sub64 returns a-b and whether the difference underflowed.
func Sub64(a, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow != 0
}

// Mul64 returns a*b and whether the product overflowed.
func Mul64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi != 0
}
