// Package issuer implements the in-process Asset Issuer: a versioned
// certificate ledger backing CID ownership.
//
// Each certificate series is keyed by a fully-qualified name. Metadata changes
// never mutate an instance in place; they re-issue the holder's unit as a new
// instance at a bumped version. "Current" always means the highest version, so
// holders of older instances stop being recognized as owners the moment the
// series is re-issued by someone else.
package issuer

import (
	"context"
	"fmt"
	"sync"

	"cidreg/internal/registry/ports"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
)

type instance struct {
	version  uint64
	metadata map[string]string
	balances map[domain.Address]uint64
}

type series struct {
	name      string
	instances []*instance // ascending by version
}

// Ledger is an in-memory certificate ledger. It satisfies ports.AssetIssuer.
type Ledger struct {
	authority ports.MintAuthority
	vault     domain.Address

	mu     sync.Mutex
	series map[ports.CertificateID]*series
}

// NewLedger constructs a ledger bound to a mint authority and a custodial
// vault address. The authority is fixed for the ledger's lifetime; minting
// calls presenting any other capability are rejected.
func NewLedger(authority ports.MintAuthority, vault domain.Address) (*Ledger, error) {
	if authority.IsZero() {
		return nil, fmt.Errorf("mint authority is required")
	}
	if vault.IsZero() {
		return nil, fmt.Errorf("vault address is required")
	}
	return &Ledger{
		authority: authority,
		vault:     vault,
		series:    make(map[ports.CertificateID]*series),
	}, nil
}

func (l *Ledger) IssuerAddress() domain.Address {
	return l.vault
}

func (l *Ledger) EnsureCertificate(_ context.Context, name string) (ports.CertificateID, error) {
	if name == "" {
		return "", fmt.Errorf("certificate name is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id := ports.CertificateID(name)
	if _, exists := l.series[id]; !exists {
		l.series[id] = &series{name: name}
	}
	return id, nil
}

// Mint credits one unit of the current instance to the vault, creating the
// first instance if the series has never been minted.
func (l *Ledger) Mint(_ context.Context, authority ports.MintAuthority, id ports.CertificateID) (ports.Certificate, error) {
	if authority != l.authority {
		return ports.Certificate{}, fmt.Errorf("mint: invalid authority")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ser, exists := l.series[id]
	if !exists {
		return ports.Certificate{}, fmt.Errorf("mint %q: %w", id, sentinel.ErrNotFound)
	}
	if len(ser.instances) == 0 {
		ser.instances = append(ser.instances, &instance{
			version:  1,
			metadata: make(map[string]string),
			balances: make(map[domain.Address]uint64),
		})
	}
	cur := ser.instances[len(ser.instances)-1]
	cur.balances[l.vault]++
	return toCertificate(id, cur), nil
}

// SetMetadata re-issues the owner's holding of cert as a new instance at a
// bumped version carrying the merged metadata. Only the current instance can
// be re-issued.
func (l *Ledger) SetMetadata(_ context.Context, owner domain.Address, cert ports.Certificate, metadata map[string]string) (ports.Certificate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ser, cur, err := l.current(cert.ID)
	if err != nil {
		return ports.Certificate{}, err
	}
	if cert.Version != cur.version {
		return ports.Certificate{}, fmt.Errorf("set metadata on stale version %d (current %d): %w",
			cert.Version, cur.version, sentinel.ErrConflict)
	}
	held := cur.balances[owner]
	if held == 0 {
		return ports.Certificate{}, fmt.Errorf("set metadata: %q holds no balance: %w", owner, sentinel.ErrNotFound)
	}

	next := &instance{
		version:  cur.version + 1,
		metadata: make(map[string]string, len(cur.metadata)+len(metadata)),
		balances: map[domain.Address]uint64{owner: held},
	}
	for k, v := range cur.metadata {
		next.metadata[k] = v
	}
	for k, v := range metadata {
		next.metadata[k] = v
	}
	delete(cur.balances, owner)
	ser.instances = append(ser.instances, next)
	return toCertificate(cert.ID, next), nil
}

func (l *Ledger) HighestVersion(_ context.Context, id ports.CertificateID) (ports.Certificate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, cur, err := l.current(id)
	if err != nil {
		return ports.Certificate{}, err
	}
	return toCertificate(id, cur), nil
}

func (l *Ledger) BalanceOf(_ context.Context, addr domain.Address, cert ports.Certificate) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ser, exists := l.series[cert.ID]
	if !exists {
		return 0, fmt.Errorf("balance of %q: %w", cert.ID, sentinel.ErrNotFound)
	}
	for _, inst := range ser.instances {
		if inst.version == cert.Version {
			return inst.balances[addr], nil
		}
	}
	return 0, fmt.Errorf("balance of %q v%d: %w", cert.ID, cert.Version, sentinel.ErrNotFound)
}

func (l *Ledger) Transfer(_ context.Context, cert ports.Certificate, from, to domain.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ser, exists := l.series[cert.ID]
	if !exists {
		return fmt.Errorf("transfer %q: %w", cert.ID, sentinel.ErrNotFound)
	}
	for _, inst := range ser.instances {
		if inst.version != cert.Version {
			continue
		}
		if inst.balances[from] < amount {
			return fmt.Errorf("transfer %q v%d from %q: %w", cert.ID, cert.Version, from, sentinel.ErrInsufficientFunds)
		}
		inst.balances[from] -= amount
		if inst.balances[from] == 0 {
			delete(inst.balances, from)
		}
		inst.balances[to] += amount
		return nil
	}
	return fmt.Errorf("transfer %q v%d: %w", cert.ID, cert.Version, sentinel.ErrNotFound)
}

// current returns the series and its highest-version instance.
// Caller must hold l.mu.
func (l *Ledger) current(id ports.CertificateID) (*series, *instance, error) {
	ser, exists := l.series[id]
	if !exists || len(ser.instances) == 0 {
		return nil, nil, fmt.Errorf("certificate %q: %w", id, sentinel.ErrNotFound)
	}
	return ser, ser.instances[len(ser.instances)-1], nil
}

func toCertificate(id ports.CertificateID, inst *instance) ports.Certificate {
	meta := make(map[string]string, len(inst.metadata))
	for k, v := range inst.metadata {
		meta[k] = v
	}
	return ports.Certificate{ID: id, Version: inst.version, Metadata: meta}
}
