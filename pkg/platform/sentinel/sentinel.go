package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and in-process collaborators
// return these (optionally wrapped) so services can translate them into domain
// errors with the right code.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: uniqueness or versioning conflict
// - ErrInsufficientFunds: payer balance below transfer amount
// - ErrAlreadyActivated: genesis marker already recorded
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyActivated  = errors.New("already activated")
)
