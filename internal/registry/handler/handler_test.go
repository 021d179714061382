package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cidreg/internal/adminconfig"
	"cidreg/internal/authtoken"
	"cidreg/internal/issuer"
	"cidreg/internal/payments"
	"cidreg/internal/registry/genesis"
	"cidreg/internal/registry/ports"
	"cidreg/internal/registry/service"
	"cidreg/internal/registry/store/event"
	"cidreg/internal/registry/store/record"
	"cidreg/pkg/domain"
	"cidreg/pkg/requestcontext"
)

var handlerGenesis = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type RegistryHandlerSuite struct {
	suite.Suite

	payments *payments.Ledger
	config   *adminconfig.Store
	handler  *Handler
	router   chi.Router
	tokens   *authtoken.Service
}

func TestRegistryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistryHandlerSuite))
}

func (s *RegistryHandlerSuite) SetupTest() {
	authority := ports.GrantMintAuthority()
	ledger, err := issuer.NewLedger(authority, "issuer-vault")
	s.Require().NoError(err)

	s.config, err = adminconfig.NewStore(adminconfig.Params{
		Enabled:      true,
		BasePrice:    10,
		Treasury:     "treasury",
		CIDTypeLabel: "cid",
	})
	s.Require().NoError(err)

	clock := genesis.NewClock(genesis.NewInMemoryStore())
	s.Require().NoError(clock.Activate(context.Background(), handlerGenesis))

	s.payments = payments.NewLedger()
	s.payments.Deposit(context.Background(), "alice", 1_000_000)

	svc, err := service.New(
		record.NewInMemoryStore(),
		event.NewInMemoryStore(),
		s.config,
		s.payments,
		ledger,
		authority,
		clock,
	)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.tokens = authtoken.NewService("test-signing-key", "cidreg", "cidreg")
	s.handler = New(svc, logger, nil, s.tokens)
	s.router = chi.NewRouter()
	s.handler.Register(s.router)
}

// do calls a handler method directly with caller and request time injected,
// bypassing the middleware chain.
func (s *RegistryHandlerSuite) do(method, path string, caller domain.Address, body any, fn http.HandlerFunc, cid string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)

	ctx := requestcontext.WithTime(req.Context(), handlerGenesis)
	if !caller.IsZero() {
		ctx = requestcontext.WithCaller(ctx, caller)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("cid", cid)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func (s *RegistryHandlerSuite) TestRegister() {
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Equal(http.StatusCreated, w.Code)

	var resp struct {
		Fee    uint64 `json:"fee"`
		Record struct {
			CID     int    `json:"cid"`
			Version uint64 `json:"version"`
			Target  string `json:"target"`
		} `json:"record"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(uint64(10), resp.Fee)
	s.Equal(1234, resp.Record.CID)
	s.Equal("alice", resp.Record.Target)
}

func (s *RegistryHandlerSuite) TestRegisterInvalidCID() {
	w := s.do(http.MethodPost, "/registry/abc/register", "alice", nil, s.handler.handleRegister, "abc")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "invalid_cid")
}

func (s *RegistryHandlerSuite) TestRegisterTaken() {
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Require().Equal(http.StatusCreated, w.Code)

	s.payments.Deposit(context.Background(), "bob", 1_000)
	w = s.do(http.MethodPost, "/registry/1234/register", "bob", nil, s.handler.handleRegister, "1234")
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "not_available")
}

func (s *RegistryHandlerSuite) TestRegisterPaused() {
	s.Require().NoError(s.config.SetEnabled(context.Background(), false))
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), "not_enabled")
}

func (s *RegistryHandlerSuite) TestSetAndClearAddress() {
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPut, "/registry/1234/address", "alice",
		map[string]string{"target": "bob"}, s.handler.handleSetAddress, "1234")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/resolve/1234", "", nil, s.handler.handleResolve, "1234")
	s.Equal(http.StatusOK, w.Code)
	var resolved struct {
		Target *string `json:"target"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resolved))
	s.Require().NotNil(resolved.Target)
	s.Equal("bob", *resolved.Target)

	w = s.do(http.MethodDelete, "/registry/1234/address", "alice", nil, s.handler.handleClearAddress, "1234")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/resolve/1234", "", nil, s.handler.handleResolve, "1234")
	s.Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resolved))
	s.Nil(resolved.Target)
}

func (s *RegistryHandlerSuite) TestSetAddressByNonOwnerIsForbidden() {
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPut, "/registry/1234/address", "bob",
		map[string]string{"target": "bob"}, s.handler.handleSetAddress, "1234")
	s.Equal(http.StatusForbidden, w.Code)
	s.Contains(w.Body.String(), "not_owner")
}

func (s *RegistryHandlerSuite) TestStatusUnregistered() {
	w := s.do(http.MethodGet, "/registry/1234", "", nil, s.handler.handleStatus, "1234")
	s.Equal(http.StatusOK, w.Code)

	var status struct {
		Registered   bool `json:"registered"`
		Registerable bool `json:"registerable"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &status))
	s.False(status.Registered)
	s.True(status.Registerable)
}

func (s *RegistryHandlerSuite) TestPrice() {
	w := s.do(http.MethodGet, "/registry/price", "", nil, s.handler.handlePrice, "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"price":10}`, w.Body.String())
}

func (s *RegistryHandlerSuite) TestEvents() {
	w := s.do(http.MethodPost, "/registry/1234/register", "alice", nil, s.handler.handleRegister, "1234")
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/registry/1234/events", "", nil, s.handler.handleEvents, "1234")
	s.Equal(http.StatusOK, w.Code)

	var events struct {
		Registrations  []json.RawMessage `json:"registrations"`
		AddressChanges []json.RawMessage `json:"address_changes"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &events))
	s.Len(events.Registrations, 1)
	s.Len(events.AddressChanges, 1)
}

// Routed requests exercise the full middleware chain, including bearer auth.
func (s *RegistryHandlerSuite) TestRoutedRegisterRequiresAuth() {
	req := httptest.NewRequest(http.MethodPost, "/registry/1234/register", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RegistryHandlerSuite) TestRoutedRegisterWithToken() {
	token, err := s.tokens.GenerateAccessToken("alice", time.Hour)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/registry/1234/register", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *RegistryHandlerSuite) TestRoutedResolveIsPublic() {
	req := httptest.NewRequest(http.MethodGet, "/resolve/1234", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}
