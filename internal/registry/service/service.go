// Package service implements the registry lifecycle engine: registration,
// renewal, address binding, resolution, and the derived state machine over
// records.
//
// State for a CID is derived from its record and the observation time, never
// stored: Active (now < expiry), Renewable (now >= expiry - 6 months, a lower
// bound with no upper bound), Expired (now >= expiry). A CID is registerable
// when it has no record or its record is expired.
//
// Ownership is never stored either. It is derived per call by resolving the
// highest-version certificate instance for the CID's name and checking the
// caller's balance of that exact instance. Every metadata-changing operation
// re-issues the certificate at a bumped version, which is what stops a
// displaced previous owner's stale certificate from being recognized.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cidreg/internal/registry/genesis"
	registrymetrics "cidreg/internal/registry/metrics"
	"cidreg/internal/registry/models"
	"cidreg/internal/registry/ports"
	"cidreg/internal/registry/pricing"
	"cidreg/pkg/domain"
	dErrors "cidreg/pkg/domain-errors"
	"cidreg/pkg/platform/sentinel"
	"cidreg/pkg/requestcontext"
)

// Service is the registry lifecycle engine.
type Service struct {
	records   ports.RecordStore
	events    ports.EventStore
	config    ports.ConfigStore
	payments  ports.Payments
	issuer    ports.AssetIssuer
	authority ports.MintAuthority
	clock     *genesis.Clock

	logger   *slog.Logger
	metrics  *registrymetrics.Metrics
	cache    ports.ResolveCache
	sink     ports.EventSink
	txRunner ports.TxRunner
	tracer   trace.Tracer
	locks    *cidLocks
}

// passthroughRunner is the default TxRunner. The in-memory stores commit each
// write on its own, so there is nothing to scope.
type passthroughRunner struct{}

func (passthroughRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithResolveCache enables the read-through cache for Resolve. Resolution is
// documented as possibly stale, so caching does not change its semantics.
func WithResolveCache(cache ports.ResolveCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithEventSink fans lifecycle events out to an external stream, best effort.
func WithEventSink(sink ports.EventSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithTxRunner scopes each operation's record and event writes to one storage
// transaction. Required for transactional backends; the in-memory default
// runs writes directly.
func WithTxRunner(runner ports.TxRunner) Option {
	return func(s *Service) {
		if runner != nil {
			s.txRunner = runner
		}
	}
}

func New(
	records ports.RecordStore,
	events ports.EventStore,
	config ports.ConfigStore,
	payments ports.Payments,
	issuer ports.AssetIssuer,
	authority ports.MintAuthority,
	clock *genesis.Clock,
	opts ...Option,
) (*Service, error) {
	if records == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if events == nil {
		return nil, fmt.Errorf("event store is required")
	}
	if config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payments is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("asset issuer is required")
	}
	if authority.IsZero() {
		return nil, fmt.Errorf("mint authority is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("genesis clock is required")
	}

	svc := &Service{
		records:   records,
		events:    events,
		config:    config,
		payments:  payments,
		issuer:    issuer,
		authority: authority,
		clock:     clock,
		txRunner:  passthroughRunner{},
		tracer:    otel.Tracer("cidreg/internal/registry/service"),
		locks:     newCIDLocks(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// RegistrationResult is returned by Register and Renew.
type RegistrationResult struct {
	Record *models.Record
	Fee    uint64
}

// Status is the derived lifecycle state of a CID at one observation time.
type Status struct {
	Record       *models.Record `json:"record,omitempty"`
	Registered   bool           `json:"registered"`
	Expired      bool           `json:"expired"`
	Renewable    bool           `json:"renewable"`
	Registerable bool           `json:"registerable"`
}

// Register registers a CID for the caller: charges the current curve price,
// issues the backing certificate, writes the record with full validity, and
// binds the target to the caller's own address as a convenience. Emits exactly
// one registration event and one address-change event.
//
// Re-registering an expired CID overwrites the prior record entirely.
func (s *Service) Register(ctx context.Context, caller domain.Address, cid domain.CID) (*RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "registry.register",
		trace.WithAttributes(attribute.Int("cid", int(cid))))
	defer span.End()

	if err := s.validateEntry(caller, cid); err != nil {
		return nil, err
	}
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(cid)
	defer unlock()

	now := requestcontext.Now(ctx)

	existing, err := s.records.Find(ctx, cid)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	if existing != nil && !existing.IsExpired(now) {
		return nil, dErrors.Newf(dErrors.CodeNotAvailable, "cid %s is already registered", cid)
	}

	fee, err := s.chargeFee(ctx, caller, now)
	if err != nil {
		return nil, err
	}

	res, err := s.completeRegistration(ctx, caller, cid, fee, now)
	if err != nil {
		// The storage writes abort with the transaction; the fee is
		// compensated explicitly so a failed registration costs nothing.
		s.refundFee(ctx, caller, fee)
		return nil, err
	}

	s.metrics.IncRegistrations()
	s.metrics.ObserveFee(fee)
	s.logger.InfoContext(ctx, "cid registered",
		"cid", cid.String(),
		"fee", fee,
		"version", res.Record.Version,
		"expires_at", res.Record.ExpiresAt,
		"request_id", requestcontext.RequestID(ctx),
	)
	return res, nil
}

// completeRegistration performs the certificate work and the storage writes
// for Register. Both event appends and the record upsert share one
// transaction.
func (s *Service) completeRegistration(ctx context.Context, caller domain.Address, cid domain.CID, fee uint64, now time.Time) (*RegistrationResult, error) {
	label, err := s.config.CIDTypeLabel(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read cid type label")
	}
	certID, err := s.issuer.EnsureCertificate(ctx, cid.Name(label))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to ensure certificate")
	}
	cert, err := s.issuer.Mint(ctx, s.authority, certID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint certificate")
	}

	expiresAt := now.Add(pricing.ValidityDuration())
	cert, err = s.issuer.SetMetadata(ctx, s.issuer.IssuerAddress(), cert, map[string]string{
		ports.MetaKeyKind:      label,
		ports.MetaKeyExpiresAt: strconv.FormatInt(expiresAt.Unix(), 10),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set certificate metadata")
	}
	if err := s.issuer.Transfer(ctx, cert, s.issuer.IssuerAddress(), caller, 1); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer certificate")
	}

	rec := models.NewRecord(cid, cert.Version, now)

	// Convenience bind: a fresh registration resolves to its registrant until
	// the owner points it elsewhere.
	bindCert, err := s.issuer.SetMetadata(ctx, caller, cert, map[string]string{
		ports.MetaKeyTarget: caller.String(),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set certificate metadata")
	}
	bound := rec.Clone()
	bound.ApplyTarget(bindCert.Version, &caller)

	var regEv models.RegistrationEvent
	var addrEv models.AddressChangeEvent
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		ev, err := s.events.AppendRegistration(ctx, models.RegistrationEvent{
			CID:       rec.CID,
			Fee:       fee,
			Version:   rec.Version,
			ExpiresAt: rec.ExpiresAt,
			At:        now,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append registration event")
		}
		regEv = ev

		aev, err := s.events.AppendAddressChange(ctx, models.AddressChangeEvent{
			CID:       bound.CID,
			Version:   bound.Version,
			ExpiresAt: bound.ExpiresAt,
			Target:    bound.Target,
			At:        now,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append address change event")
		}
		addrEv = aev

		if err := s.records.Upsert(ctx, bound); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheBinding(ctx, bound)
	s.publishRegistration(ctx, regEv)
	s.publishAddressChange(ctx, addrEv)
	s.metrics.IncAddressChanges()
	return &RegistrationResult{Record: bound, Fee: fee}, nil
}

// Renew extends a CID's validity by the fixed period, added to the previous
// expiration. The caller must currently own the CID; the price follows the
// same curve as registration with no discount. Emits exactly one registration
// event and no address-change event.
func (s *Service) Renew(ctx context.Context, caller domain.Address, cid domain.CID) (*RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "registry.renew",
		trace.WithAttributes(attribute.Int("cid", int(cid))))
	defer span.End()

	if err := s.validateEntry(caller, cid); err != nil {
		return nil, err
	}
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(cid)
	defer unlock()

	now := requestcontext.Now(ctx)

	rec, err := s.findRecord(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !rec.IsRenewable(now) {
		return nil, dErrors.Newf(dErrors.CodeNotRenewable, "cid %s is not within its renewal window", cid)
	}

	// The sole guard against a stale renew after someone else re-registered
	// this CID: the previous owner's certificate is no longer the highest
	// version, so the ownership check fails.
	cert, err := s.requireOwner(ctx, caller, cid)
	if err != nil {
		return nil, err
	}

	fee, err := s.chargeFee(ctx, caller, now)
	if err != nil {
		return nil, err
	}

	newExpiry := rec.ExpiresAt.Add(pricing.ValidityDuration())
	cert, err = s.issuer.SetMetadata(ctx, caller, cert, map[string]string{
		ports.MetaKeyExpiresAt: strconv.FormatInt(newExpiry.Unix(), 10),
	})
	if err != nil {
		s.refundFee(ctx, caller, fee)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set certificate metadata")
	}

	updated := rec.Clone()
	updated.ApplyRenewal(cert.Version)

	var regEv models.RegistrationEvent
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		ev, err := s.events.AppendRegistration(ctx, models.RegistrationEvent{
			CID:       updated.CID,
			Fee:       fee,
			Version:   updated.Version,
			ExpiresAt: updated.ExpiresAt,
			At:        now,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append registration event")
		}
		regEv = ev

		if err := s.records.Upsert(ctx, updated); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
		}
		return nil
	})
	if err != nil {
		s.refundFee(ctx, caller, fee)
		return nil, err
	}
	s.publishRegistration(ctx, regEv)

	s.metrics.IncRenewals()
	s.metrics.ObserveFee(fee)
	s.logger.InfoContext(ctx, "cid renewed",
		"cid", cid.String(),
		"fee", fee,
		"version", updated.Version,
		"expires_at", updated.ExpiresAt,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &RegistrationResult{Record: updated, Fee: fee}, nil
}

// SetAddress binds the CID's resolution target. Owner only. Allowed even when
// registration is paused.
func (s *Service) SetAddress(ctx context.Context, caller domain.Address, cid domain.CID, target domain.Address) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "registry.set_address",
		trace.WithAttributes(attribute.Int("cid", int(cid))))
	defer span.End()

	if err := s.validateEntry(caller, cid); err != nil {
		return nil, err
	}
	if target.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "target address is required")
	}

	unlock := s.locks.acquire(cid)
	defer unlock()

	now := requestcontext.Now(ctx)

	rec, err := s.findRecord(ctx, cid)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, caller, cid); err != nil {
		return nil, err
	}

	updated, err := s.bindTarget(ctx, caller, rec, &target, true, now)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "cid target bound",
		"cid", cid.String(),
		"target", target.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// ClearAddress removes the CID's resolution target. The owner may always
// clear; the currently bound address may clear its own binding (self-service
// unbind), in which case certificate metadata is left untouched.
func (s *Service) ClearAddress(ctx context.Context, caller domain.Address, cid domain.CID) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "registry.clear_address",
		trace.WithAttributes(attribute.Int("cid", int(cid))))
	defer span.End()

	if err := s.validateEntry(caller, cid); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(cid)
	defer unlock()

	now := requestcontext.Now(ctx)

	rec, err := s.findRecord(ctx, cid)
	if err != nil {
		return nil, err
	}

	owns, err := s.isOwner(ctx, caller, cid)
	if err != nil {
		return nil, err
	}
	if !owns && (rec.Target == nil || *rec.Target != caller) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is neither owner nor bound address")
	}

	updated, err := s.bindTarget(ctx, caller, rec, nil, owns, now)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "cid target cleared",
		"cid", cid.String(),
		"as_owner", owns,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// Resolve returns the CID's bound target address, or nil when the CID has no
// record or no binding. The result may be stale: expiry and ownership are not
// re-validated.
func (s *Service) Resolve(ctx context.Context, cid domain.CID) (*domain.Address, error) {
	if err := validateCID(cid); err != nil {
		return nil, err
	}

	if s.cache != nil {
		target, hit, err := s.cache.Get(ctx, cid)
		if err != nil {
			s.logger.WarnContext(ctx, "resolve cache read failed", "cid", cid.String(), "error", err)
		} else if hit {
			return target, nil
		}
	}

	rec, err := s.records.Find(ctx, cid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cid, rec.Target); err != nil {
			s.logger.WarnContext(ctx, "resolve cache write failed", "cid", cid.String(), "error", err)
		}
	}
	if rec.Target == nil {
		return nil, nil
	}
	target := *rec.Target
	return &target, nil
}

// Record returns the stored record for a CID.
func (s *Service) Record(ctx context.Context, cid domain.CID) (*models.Record, error) {
	if err := validateCID(cid); err != nil {
		return nil, err
	}
	return s.findRecord(ctx, cid)
}

// Status returns the record together with its derived lifecycle state as of
// the request time.
func (s *Service) Status(ctx context.Context, cid domain.CID) (*Status, error) {
	if err := validateCID(cid); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	rec, err := s.records.Find(ctx, cid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &Status{Registerable: true}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	return &Status{
		Record:       rec,
		Registered:   true,
		Expired:      rec.IsExpired(now),
		Renewable:    rec.IsRenewable(now),
		Registerable: rec.IsExpired(now),
	}, nil
}

// IsRegistered reports whether the CID has ever been registered. Absence is a
// normal, non-error case.
func (s *Service) IsRegistered(ctx context.Context, cid domain.CID) (bool, error) {
	status, err := s.Status(ctx, cid)
	if err != nil {
		return false, err
	}
	return status.Registered, nil
}

// IsRegisterable reports whether the CID can be registered right now. Absence
// is a normal, non-error case.
func (s *Service) IsRegisterable(ctx context.Context, cid domain.CID) (bool, error) {
	status, err := s.Status(ctx, cid)
	if err != nil {
		return false, err
	}
	return status.Registerable, nil
}

// IsExpired reports whether the CID's record has expired. Fails with
// CodeNotFound when the CID has never been registered.
func (s *Service) IsExpired(ctx context.Context, cid domain.CID) (bool, error) {
	if err := validateCID(cid); err != nil {
		return false, err
	}
	rec, err := s.findRecord(ctx, cid)
	if err != nil {
		return false, err
	}
	return rec.IsExpired(requestcontext.Now(ctx)), nil
}

// IsRenewable reports whether the CID is within (or past) its renewal window.
// Fails with CodeNotFound when the CID has never been registered.
func (s *Service) IsRenewable(ctx context.Context, cid domain.CID) (bool, error) {
	if err := validateCID(cid); err != nil {
		return false, err
	}
	rec, err := s.findRecord(ctx, cid)
	if err != nil {
		return false, err
	}
	return rec.IsRenewable(requestcontext.Now(ctx)), nil
}

// CurrentPrice returns what a registration or renewal costs right now.
func (s *Service) CurrentPrice(ctx context.Context) (uint64, error) {
	return s.price(ctx, requestcontext.Now(ctx))
}

// RegistrationEvents returns the append-only registration history of a CID.
func (s *Service) RegistrationEvents(ctx context.Context, cid domain.CID) ([]models.RegistrationEvent, error) {
	if err := validateCID(cid); err != nil {
		return nil, err
	}
	events, err := s.events.RegistrationsByCID(ctx, cid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registration events")
	}
	return events, nil
}

// AddressChangeEvents returns the append-only binding history of a CID.
func (s *Service) AddressChangeEvents(ctx context.Context, cid domain.CID) ([]models.AddressChangeEvent, error) {
	if err := validateCID(cid); err != nil {
		return nil, err
	}
	events, err := s.events.AddressChangesByCID(ctx, cid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list address change events")
	}
	return events, nil
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

func validateCID(cid domain.CID) error {
	if cid < domain.CIDMin || cid > domain.CIDMax {
		return dErrors.Newf(dErrors.CodeInvalidCID, "cid must be in [%d, %d], got %d", domain.CIDMin, domain.CIDMax, int(cid))
	}
	return nil
}

func (s *Service) validateEntry(caller domain.Address, cid domain.CID) error {
	if err := validateCID(cid); err != nil {
		return err
	}
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	return nil
}

func (s *Service) requireEnabled(ctx context.Context) error {
	enabled, err := s.config.Enabled(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read enabled flag")
	}
	if !enabled {
		return dErrors.New(dErrors.CodeNotEnabled, "registration is paused")
	}
	return nil
}

// findRecord loads a record, mapping absence to CodeNotFound.
func (s *Service) findRecord(ctx context.Context, cid domain.CID) (*models.Record, error) {
	rec, err := s.records.Find(ctx, cid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "cid %s is not registered", cid)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	return rec, nil
}

// price computes the curve price at the request time.
func (s *Service) price(ctx context.Context, now time.Time) (uint64, error) {
	elapsed, err := s.clock.Elapsed(ctx, now)
	if err != nil {
		return 0, err
	}
	base, err := s.config.BasePrice(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read base price")
	}
	return pricing.RegistrationPrice(base, elapsed)
}

// chargeFee computes the current price and transfers it to the treasury.
func (s *Service) chargeFee(ctx context.Context, caller domain.Address, now time.Time) (uint64, error) {
	fee, err := s.price(ctx, now)
	if err != nil {
		return 0, err
	}
	treasury, err := s.config.TreasuryAddress(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read treasury address")
	}
	if err := s.payments.Transfer(ctx, caller, treasury, fee); err != nil {
		if errors.Is(err, sentinel.ErrInsufficientFunds) {
			return 0, dErrors.Wrap(err, dErrors.CodeBadRequest, "insufficient balance for fee")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "payment transfer failed")
	}
	return fee, nil
}

// currentCertificate resolves the CID's certificate at its highest version.
// The version must be re-resolved on every call; caching one across calls
// would let a displaced owner's stale certificate pass the balance check.
func (s *Service) currentCertificate(ctx context.Context, cid domain.CID) (ports.Certificate, error) {
	label, err := s.config.CIDTypeLabel(ctx)
	if err != nil {
		return ports.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read cid type label")
	}
	certID, err := s.issuer.EnsureCertificate(ctx, cid.Name(label))
	if err != nil {
		return ports.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve certificate")
	}
	cert, err := s.issuer.HighestVersion(ctx, certID)
	if err != nil {
		return ports.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve current certificate")
	}
	return cert, nil
}

// isOwner derives ownership from the issuer: the caller owns the CID iff they
// hold a positive balance of the current (highest-version) instance.
func (s *Service) isOwner(ctx context.Context, caller domain.Address, cid domain.CID) (bool, error) {
	cert, err := s.currentCertificate(ctx, cid)
	if err != nil {
		return false, err
	}
	balance, err := s.issuer.BalanceOf(ctx, caller, cert)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check certificate balance")
	}
	return balance > 0, nil
}

// requireOwner is isOwner with a CodeNotOwner failure, returning the current
// certificate for follow-up metadata calls.
func (s *Service) requireOwner(ctx context.Context, caller domain.Address, cid domain.CID) (ports.Certificate, error) {
	cert, err := s.currentCertificate(ctx, cid)
	if err != nil {
		return ports.Certificate{}, err
	}
	balance, err := s.issuer.BalanceOf(ctx, caller, cert)
	if err != nil {
		return ports.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check certificate balance")
	}
	if balance == 0 {
		return ports.Certificate{}, dErrors.Newf(dErrors.CodeNotOwner, "caller does not own cid %s", cid)
	}
	return cert, nil
}

// bindTarget updates the record's target, re-issuing certificate metadata when
// reissue is set (owner-initiated changes), and emits one address-change
// event. The bound-but-non-owning unbind path passes reissue=false and leaves
// the certificate untouched.
func (s *Service) bindTarget(ctx context.Context, owner domain.Address, rec *models.Record, target *domain.Address, reissue bool, now time.Time) (*models.Record, error) {
	version := rec.Version
	if reissue {
		cert, err := s.currentCertificate(ctx, rec.CID)
		if err != nil {
			return nil, err
		}
		var targetMeta string
		if target != nil {
			targetMeta = target.String()
		}
		cert, err = s.issuer.SetMetadata(ctx, owner, cert, map[string]string{
			ports.MetaKeyTarget: targetMeta,
		})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set certificate metadata")
		}
		version = cert.Version
	}

	updated := rec.Clone()
	updated.ApplyTarget(version, target)

	var ev models.AddressChangeEvent
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		appended, err := s.events.AppendAddressChange(ctx, models.AddressChangeEvent{
			CID:       updated.CID,
			Version:   updated.Version,
			ExpiresAt: updated.ExpiresAt,
			Target:    updated.Target,
			At:        now,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append address change event")
		}
		ev = appended

		if err := s.records.Upsert(ctx, updated); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheBinding(ctx, updated)
	s.publishAddressChange(ctx, ev)
	s.metrics.IncAddressChanges()
	return updated, nil
}

// refundFee compensates a charged fee after a failed operation by transferring
// it back from the treasury. Best effort: a refund failure is logged, not
// returned, because the operation's own error is the one the caller needs.
func (s *Service) refundFee(ctx context.Context, caller domain.Address, fee uint64) {
	if fee == 0 {
		return
	}
	treasury, err := s.config.TreasuryAddress(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fee refund failed", "caller", caller.String(), "fee", fee, "error", err)
		return
	}
	if err := s.payments.Transfer(ctx, treasury, caller, fee); err != nil {
		s.logger.ErrorContext(ctx, "fee refund failed", "caller", caller.String(), "fee", fee, "error", err)
	}
}

// cacheBinding overwrites the resolve cache entry with the record's current
// binding.
func (s *Service) cacheBinding(ctx context.Context, rec *models.Record) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, rec.CID, rec.Target); err != nil {
		s.logger.WarnContext(ctx, "resolve cache write failed", "cid", rec.CID.String(), "error", err)
	}
}

func (s *Service) publishRegistration(ctx context.Context, ev models.RegistrationEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.PublishRegistration(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "event sink publish failed", "cid", ev.CID.String(), "error", err)
	}
}

func (s *Service) publishAddressChange(ctx context.Context, ev models.AddressChangeEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.PublishAddressChange(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "event sink publish failed", "cid", ev.CID.String(), "error", err)
	}
}
