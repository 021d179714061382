package models

import (
	"time"

	"cidreg/internal/registry/pricing"
	"cidreg/pkg/domain"
)

// Record is the registry's per-CID state.
//
// Invariants:
//   - A Record exists iff the CID has been registered at least once; records
//     are upserted on re-registration, never deleted.
//   - Version is assigned by the Asset Issuer each time the backing
//     certificate is (re)issued and is monotonically non-decreasing across the
//     lifetime of a CID.
//   - Expiry is derived from ExpiresAt and the observation time, never stored.
//   - Target is independent of ownership and may be unset while the CID is
//     actively registered.
type Record struct {
	CID       domain.CID      `json:"cid"`
	Version   uint64          `json:"version"`
	ExpiresAt time.Time       `json:"expires_at"`
	Target    *domain.Address `json:"target,omitempty"`
}

// NewRecord builds the record for a fresh registration: full validity from
// now, no target bound yet.
func NewRecord(cid domain.CID, version uint64, now time.Time) *Record {
	return &Record{
		CID:       cid,
		Version:   version,
		ExpiresAt: now.Add(pricing.ValidityDuration()),
	}
}

// IsExpired reports whether the record has expired as of now.
func (r *Record) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsActive reports whether the record is registered and unexpired as of now.
func (r *Record) IsActive(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// IsRenewable reports whether now has reached the renewal window. The window
// is a lower bound only: once a record is within six months of expiry it stays
// renewable indefinitely, including after expiry. A stale renew attempt after
// someone else re-registers the CID is blocked by the ownership check, not by
// this predicate.
func (r *Record) IsRenewable(now time.Time) bool {
	return !now.Before(r.ExpiresAt.Add(-pricing.RenewalWindow()))
}

// ApplyRenewal extends validity by the fixed period, added to the previous
// expiration rather than reset from now, and records the re-issued
// certificate version.
func (r *Record) ApplyRenewal(version uint64) {
	r.ExpiresAt = r.ExpiresAt.Add(pricing.ValidityDuration())
	r.Version = version
}

// ApplyTarget binds or clears the resolution target and records the
// certificate version current after the change. A nil target clears the
// binding.
func (r *Record) ApplyTarget(version uint64, target *domain.Address) {
	r.Target = target
	r.Version = version
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Target != nil {
		target := *r.Target
		out.Target = &target
	}
	return &out
}
