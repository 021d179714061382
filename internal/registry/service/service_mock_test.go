package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cidreg/internal/adminconfig"
	"cidreg/internal/issuer"
	"cidreg/internal/payments"
	"cidreg/internal/registry/genesis"
	"cidreg/internal/registry/models"
	"cidreg/internal/registry/ports"
	"cidreg/internal/registry/ports/mocks"
	"cidreg/internal/registry/service"
	"cidreg/internal/registry/store/event"
	"cidreg/internal/registry/store/record"
	"cidreg/pkg/domain"
	dErrors "cidreg/pkg/domain-errors"
	"cidreg/pkg/requestcontext"
)

type mockFixture struct {
	records   *record.InMemoryStore
	events    *event.InMemoryStore
	config    *adminconfig.Store
	payments  *payments.Ledger
	issuer    *issuer.Ledger
	authority ports.MintAuthority
	clock     *genesis.Clock
}

func newMockFixture(t *testing.T) *mockFixture {
	t.Helper()

	authority := ports.GrantMintAuthority()
	ledger, err := issuer.NewLedger(authority, vault)
	require.NoError(t, err)

	config, err := adminconfig.NewStore(adminconfig.Params{
		Enabled:      true,
		BasePrice:    basePrice,
		Treasury:     treasury,
		CIDTypeLabel: cidLabel,
	})
	require.NoError(t, err)

	clock := genesis.NewClock(genesis.NewInMemoryStore())
	require.NoError(t, clock.Activate(context.Background(), genesisAt))

	return &mockFixture{
		records:   record.NewInMemoryStore(),
		events:    event.NewInMemoryStore(),
		config:    config,
		payments:  payments.NewLedger(),
		issuer:    ledger,
		authority: authority,
		clock:     clock,
	}
}

func TestResolveCacheHitSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMockFixture(t)

	cache := mocks.NewMockResolveCache(ctrl)
	cached := bob
	cache.EXPECT().Get(gomock.Any(), domain.CID(1234)).Return(&cached, true, nil)

	svc, err := service.New(f.records, f.events, f.config, f.payments, f.issuer, f.authority, f.clock,
		service.WithResolveCache(cache))
	require.NoError(t, err)

	// The record store is empty; only the cache can answer.
	target, err := svc.Resolve(context.Background(), domain.CID(1234))
	require.NoError(t, err)
	require.NotNil(t, target)
	require.Equal(t, bob, *target)
}

func TestResolveCacheMissFillsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMockFixture(t)
	ctx := context.Background()

	target := carol
	rec := models.NewRecord(domain.CID(1234), 1, genesisAt)
	rec.ApplyTarget(2, &target)
	require.NoError(t, f.records.Upsert(ctx, rec))

	cache := mocks.NewMockResolveCache(ctrl)
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), domain.CID(1234)).Return(nil, false, nil),
		cache.EXPECT().Set(gomock.Any(), domain.CID(1234), gomock.Any()).Return(nil),
	)

	svc, err := service.New(f.records, f.events, f.config, f.payments, f.issuer, f.authority, f.clock,
		service.WithResolveCache(cache))
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, domain.CID(1234))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, carol, *got)
}

func TestResolveCacheFailureFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMockFixture(t)
	ctx := context.Background()

	target := carol
	rec := models.NewRecord(domain.CID(1234), 1, genesisAt)
	rec.ApplyTarget(2, &target)
	require.NoError(t, f.records.Upsert(ctx, rec))

	cache := mocks.NewMockResolveCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), domain.CID(1234)).Return(nil, false, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), domain.CID(1234), gomock.Any()).Return(errors.New("redis down"))

	svc, err := service.New(f.records, f.events, f.config, f.payments, f.issuer, f.authority, f.clock,
		service.WithResolveCache(cache))
	require.NoError(t, err)

	// Cache errors degrade to store reads, never to request failures.
	got, err := svc.Resolve(ctx, domain.CID(1234))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, carol, *got)
}

func TestRecordStoreFailureMapsToInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMockFixture(t)

	records := mocks.NewMockRecordStore(ctrl)
	records.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	svc, err := service.New(records, f.events, f.config, f.payments, f.issuer, f.authority, f.clock)
	require.NoError(t, err)

	ctx := requestcontext.WithTime(context.Background(), genesisAt)
	_, err = svc.Register(ctx, alice, domain.CID(1234))
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
