package pricing

// Sqrt returns floor(sqrt(x)) for any uint64, computed by binary
// digit-by-digit extraction. No floating point is involved and no
// intermediate value exceeds 64 bits, so the result is exact across the full
// input range including 1<<64 - 1.
func Sqrt(x uint64) uint64 {
	var res uint64

	// Highest power of four that fits in a uint64.
	bit := uint64(1) << 62
	for bit > x {
		bit >>= 2
	}

	for bit != 0 {
		if x >= res+bit {
			x -= res + bit
			res = res>>1 + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	return res
}
