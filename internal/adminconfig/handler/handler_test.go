package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cidreg/internal/adminconfig"
	"cidreg/internal/adminconfig/secrets"
	"cidreg/internal/registry/genesis"
	"cidreg/pkg/testutil"
)

const adminSecret = "test-admin-secret"

type AdminHandlerSuite struct {
	suite.Suite

	store  *adminconfig.Store
	clock  *genesis.Clock
	router chi.Router
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	var err error
	s.store, err = adminconfig.NewStore(adminconfig.Params{
		Enabled:      true,
		BasePrice:    10,
		Treasury:     "treasury",
		CIDTypeLabel: "cid",
	})
	s.Require().NoError(err)

	s.clock = genesis.NewClock(genesis.NewInMemoryStore())

	hash, err := secrets.Hash(adminSecret)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(s.store, s.clock, logger, hash)
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *AdminHandlerSuite) request(method, path, secret string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if secret != "" {
		req.Header.Set(adminSecretHeader, secret)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *AdminHandlerSuite) TestActivate() {
	w := s.request(http.MethodPost, "/admin/registry/activate", adminSecret, nil)
	s.Equal(http.StatusCreated, w.Code)

	_, err := s.clock.StartTime(context.Background())
	s.Require().NoError(err)

	// Activation is one-shot.
	w = s.request(http.MethodPost, "/admin/registry/activate", adminSecret, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *AdminHandlerSuite) TestSetEnabled() {
	w := s.request(http.MethodPost, "/admin/registry/enabled", adminSecret, map[string]bool{"enabled": false})
	s.Equal(http.StatusNoContent, w.Code)

	enabled, err := s.store.Enabled(context.Background())
	s.Require().NoError(err)
	s.False(enabled)
}

func (s *AdminHandlerSuite) TestSetBasePrice() {
	w := s.request(http.MethodPost, "/admin/registry/base-price", adminSecret, map[string]uint64{"base_price": 25})
	s.Equal(http.StatusNoContent, w.Code)

	price, err := s.store.BasePrice(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(25), price)
}

func (s *AdminHandlerSuite) TestGetParams() {
	w := s.request(http.MethodGet, "/admin/registry/params", adminSecret, nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Enabled      bool    `json:"enabled"`
		BasePrice    uint64  `json:"base_price"`
		Treasury     string  `json:"treasury"`
		CIDTypeLabel string  `json:"cid_type_label"`
		ActivatedAt  *string `json:"activated_at"`
	}
	testutil.DecodeJSON(s.T(), w, &resp)
	s.True(resp.Enabled)
	s.Equal(uint64(10), resp.BasePrice)
	s.Equal("treasury", resp.Treasury)
	s.Equal("cid", resp.CIDTypeLabel)
	s.Nil(resp.ActivatedAt, "not activated yet")

	w = s.request(http.MethodPost, "/admin/registry/activate", adminSecret, nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/admin/registry/params", adminSecret, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	testutil.DecodeJSON(s.T(), w, &resp)
	s.NotNil(resp.ActivatedAt)
}

func (s *AdminHandlerSuite) TestWrongSecret() {
	w := s.request(http.MethodPost, "/admin/registry/enabled", "wrong", map[string]bool{"enabled": false})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AdminHandlerSuite) TestMissingSecret() {
	w := s.request(http.MethodPost, "/admin/registry/enabled", "", map[string]bool{"enabled": false})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AdminHandlerSuite) TestDisabledAdminSurface() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(s.store, s.clock, logger, "")
	router := chi.NewRouter()
	handler.Register(router)

	req := httptest.NewRequest(http.MethodPost, "/admin/registry/activate", nil)
	req.Header.Set(adminSecretHeader, adminSecret)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Equal(http.StatusForbidden, w.Code)
}
