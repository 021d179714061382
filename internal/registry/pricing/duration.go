// Package pricing implements the registration price curve and the duration
// arithmetic it depends on. Everything here is pure integer math: months are a
// fixed 30-day unit with no calendar awareness, and divisions truncate.
package pricing

import "time"

// SecondsPerMonth is the length of the registry's fixed month unit.
const SecondsPerMonth int64 = 60 * 60 * 24 * 30

// Validity and renewal periods, in registry months.
const (
	ValidityMonths = 24
	RenewalMonths  = 6
)

// MonthsToSeconds converts registry months to seconds.
func MonthsToSeconds(months int64) int64 {
	return months * SecondsPerMonth
}

// SecondsToMonths converts seconds to whole registry months, truncating.
func SecondsToMonths(seconds int64) int64 {
	return seconds / SecondsPerMonth
}

// ValidityDuration is the fixed validity granted by every registration or
// renewal.
func ValidityDuration() time.Duration {
	return time.Duration(MonthsToSeconds(ValidityMonths)) * time.Second
}

// RenewalWindow is how long before expiry a CID becomes renewable. The window
// has no upper bound: an expired CID stays renewable until someone else
// re-registers it, at which point the ownership check blocks the stale renew.
func RenewalWindow() time.Duration {
	return time.Duration(MonthsToSeconds(RenewalMonths)) * time.Second
}
