package pricing

import (
	"math/bits"
	"time"

	dErrors "cidreg/pkg/domain-errors"
)

// priceScale is the fixed-point scale for the curve multiplier. With
// Sqrt(priceScale) = 1000 the multiplier carries three decimal digits of
// precision through integer arithmetic.
const priceScale uint64 = 1_000_000

// RegistrationPrice converts elapsed time since genesis into a registration
// price. The price does not depend on which CID is chosen or how long the
// registration lasts (validity is always fixed); it is a global scarcity
// premium that grows with the square root of elapsed months:
//
//	months = floor(elapsed/month) + 1
//	price  = base * Sqrt(months * 1e6) / Sqrt(1e6)
//
// The +1 guarantees a multiplier of exactly 1 at genesis, so price(0) = base.
// Historical documentation described this curve as "exponential"; the formula
// is square-root growth and the formula is authoritative.
//
// All arithmetic is integer with 128-bit intermediates; divisions truncate.
func RegistrationPrice(basePrice uint64, elapsed time.Duration) (uint64, error) {
	if elapsed < 0 {
		elapsed = 0
	}
	months := uint64(SecondsToMonths(int64(elapsed/time.Second))) + 1

	hi, scaled := bits.Mul64(months, priceScale)
	if hi != 0 {
		return 0, dErrors.New(dErrors.CodeInvariantViolation, "elapsed time exceeds pricing range")
	}
	numerator := Sqrt(scaled)
	denominator := Sqrt(priceScale)

	hi, lo := bits.Mul64(basePrice, numerator)
	if hi >= denominator {
		return 0, dErrors.New(dErrors.CodeInvariantViolation, "price overflows")
	}
	price, _ := bits.Div64(hi, lo, denominator)
	return price, nil
}
