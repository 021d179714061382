package models

import (
	"time"

	"cidreg/pkg/domain"
)

// Lifecycle events are append-only: once emitted they are never mutated or
// deleted. Seq is a per-kind monotonically increasing sequence assigned by the
// event store on append, usable for "exactly N events" assertions.

// RegistrationEvent records a successful register or renew.
type RegistrationEvent struct {
	Seq       uint64     `json:"seq"`
	CID       domain.CID `json:"cid"`
	Fee       uint64     `json:"fee"`
	Version   uint64     `json:"version"`
	ExpiresAt time.Time  `json:"expires_at"`
	At        time.Time  `json:"at"`
}

// AddressChangeEvent records a target binding change. Target is nil when the
// binding was cleared.
type AddressChangeEvent struct {
	Seq       uint64          `json:"seq"`
	CID       domain.CID      `json:"cid"`
	Version   uint64          `json:"version"`
	ExpiresAt time.Time       `json:"expires_at"`
	Target    *domain.Address `json:"target,omitempty"`
	At        time.Time       `json:"at"`
}
