// Package domain holds the value types shared across registry modules.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "cidreg/pkg/domain-errors"
)

// CID bounds. The registry manages exactly 9,000 four-digit identifiers.
const (
	CIDMin = 1000
	CIDMax = 9999
)

// CID is a four-digit registry identifier in [1000, 9999].
// Invariant: the value is within bounds; construct via ParseCID or NewCID at
// trust boundaries, direct casting bypasses validation.
type CID uint16

// NewCID constructs a CID from an integer.
//
// Errors: returns CodeInvalidCID when the value is out of bounds.
func NewCID(n int) (CID, error) {
	if n < CIDMin || n > CIDMax {
		return 0, dErrors.Newf(dErrors.CodeInvalidCID, "cid must be in [%d, %d], got %d", CIDMin, CIDMax, n)
	}
	return CID(n), nil
}

// ParseCID constructs a CID from external string input.
//
// Errors: returns CodeInvalidCID when the value is empty, non-numeric, or out
// of bounds; no other errors are expected.
func ParseCID(s string) (CID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidCID, "cid cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidCID, "cid must be numeric, got %q", s)
	}
	return NewCID(n)
}

// String returns the four-digit decimal form.
func (c CID) String() string {
	return strconv.Itoa(int(c))
}

// Name returns the fully-qualified certificate name for this CID under the
// given type label, e.g. "1234.cid". The Asset Issuer keys certificates by
// this name.
func (c CID) Name(label string) string {
	return fmt.Sprintf("%d.%s", int(c), label)
}

// Address is an account address. It identifies callers, payment parties, and
// resolution targets. Addresses are opaque to the registry; only equality
// matters.
type Address string

// ParseAddress constructs an Address from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, padded, or longer
// than 128 characters.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	if strings.TrimSpace(s) != s {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address cannot have leading or trailing whitespace")
	}
	if len(s) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address must be 128 characters or less")
	}
	return Address(s), nil
}

// String returns the string representation of the address.
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}
