// Package ports defines shared interfaces for the registry module.
// Interfaces live here when consumed by the service and implemented by
// multiple backends (memory, postgres, in-process collaborators).
package ports

import (
	"context"

	"cidreg/internal/registry/models"
	"cidreg/pkg/domain"
)

// CertificateID identifies a certificate series held by the Asset Issuer,
// independent of version.
type CertificateID string

// Certificate is one versioned instance of the ownership token backing a CID.
// The issuer's notion of "current" is the instance with the highest version
// for a name; every metadata change produces a new instance at a bumped
// version, which is what invalidates stale holdings after a re-registration.
type Certificate struct {
	ID       CertificateID
	Version  uint64
	Metadata map[string]string
}

// Metadata keys the registry writes on every certificate (re)issue.
const (
	MetaKeyKind      = "kind"
	MetaKeyExpiresAt = "expires_at"
	MetaKeyTarget    = "target"
)

// MintAuthority is the capability required for privileged minting calls.
// GrantMintAuthority produces a fresh capability; the activation flow grants
// one to the issuer at construction and hands the same value to the lifecycle
// engine. Issuers compare against the grant they were born with, so the zero
// value and any independently granted capability carry no authority.
type MintAuthority struct {
	grant *struct{}
}

// GrantMintAuthority creates a new minting capability.
func GrantMintAuthority() MintAuthority {
	return MintAuthority{grant: new(struct{})}
}

// IsZero reports whether the capability is the useless zero value.
func (a MintAuthority) IsZero() bool {
	return a.grant == nil
}

// AssetIssuer is the external versioned-token authority backing each CID.
// Ownership of a CID is derived per call by resolving the highest-version
// instance for its name and checking the holder's balance of that exact
// instance; the registry never stores an owner field.
type AssetIssuer interface {
	// EnsureCertificate creates the certificate series for a name if it does
	// not exist and returns its ID.
	EnsureCertificate(ctx context.Context, name string) (CertificateID, error)

	// Mint credits one unit of the current instance to the issuer's custodial
	// account. Requires the issuer's mint authority.
	Mint(ctx context.Context, authority MintAuthority, id CertificateID) (Certificate, error)

	// SetMetadata re-issues the owner's holding of the given instance as a new
	// instance at a bumped version carrying the merged metadata.
	SetMetadata(ctx context.Context, owner domain.Address, cert Certificate, metadata map[string]string) (Certificate, error)

	// HighestVersion returns the current (highest-version) instance.
	HighestVersion(ctx context.Context, id CertificateID) (Certificate, error)

	// BalanceOf returns how many units of the exact instance the address holds.
	BalanceOf(ctx context.Context, addr domain.Address, cert Certificate) (uint64, error)

	// Transfer moves units of an instance between addresses.
	Transfer(ctx context.Context, cert Certificate, from, to domain.Address, amount uint64) error

	// IssuerAddress is the custodial account holding freshly minted
	// certificates until they are transferred to the registrant.
	IssuerAddress() domain.Address
}

// Payments moves the registration fee from payer to treasury.
type Payments interface {
	// Transfer fails with sentinel.ErrInsufficientFunds (wrapped) when the
	// payer balance is below amount.
	Transfer(ctx context.Context, payer, payee domain.Address, amount uint64) error
}

// ConfigStore exposes the admin-controlled parameters. Read-only from the
// registry's perspective.
type ConfigStore interface {
	Enabled(ctx context.Context) (bool, error)
	BasePrice(ctx context.Context) (uint64, error)
	TreasuryAddress(ctx context.Context) (domain.Address, error)
	CIDTypeLabel(ctx context.Context) (string, error)
}

// RecordStore persists per-CID records. Records are upserted, never deleted.
type RecordStore interface {
	// Find returns the record for a CID, or sentinel.ErrNotFound.
	Find(ctx context.Context, cid domain.CID) (*models.Record, error)

	// Upsert inserts or fully overwrites the record for rec.CID.
	Upsert(ctx context.Context, rec *models.Record) error

	// Count returns the number of CIDs that have ever been registered.
	Count(ctx context.Context) (int, error)
}

// EventStore is the append-only lifecycle event log. Append assigns the
// per-kind sequence number and returns the stored event.
type EventStore interface {
	AppendRegistration(ctx context.Context, ev models.RegistrationEvent) (models.RegistrationEvent, error)
	AppendAddressChange(ctx context.Context, ev models.AddressChangeEvent) (models.AddressChangeEvent, error)

	RegistrationCount(ctx context.Context) (uint64, error)
	AddressChangeCount(ctx context.Context) (uint64, error)

	RegistrationsByCID(ctx context.Context, cid domain.CID) ([]models.RegistrationEvent, error)
	AddressChangesByCID(ctx context.Context, cid domain.CID) ([]models.AddressChangeEvent, error)
}

// TxRunner scopes fn to one storage transaction: either every store write
// inside fn commits or none do. Backends without transactions run fn as-is.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResolveCache is an optional read-through cache for Resolve. Resolution is
// documented as possibly stale, so a cache cannot change observable semantics.
// Mutations overwrite the entry with the new binding on their way out.
type ResolveCache interface {
	// Get returns (target, true) on a hit; the target pointer is nil when the
	// cached record has no binding.
	Get(ctx context.Context, cid domain.CID) (*domain.Address, bool, error)
	Set(ctx context.Context, cid domain.CID, target *domain.Address) error
}

// EventSink fans lifecycle events out to an external stream. Sinks are
// best-effort: a sink failure never aborts the registry operation that
// produced the event.
type EventSink interface {
	PublishRegistration(ctx context.Context, ev models.RegistrationEvent) error
	PublishAddressChange(ctx context.Context, ev models.AddressChangeEvent) error
}
