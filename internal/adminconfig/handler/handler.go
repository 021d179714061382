// Package handler exposes the admin surface: parameter mutation and one-time
// activation, gated by the admin shared secret.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cidreg/internal/adminconfig"
	"cidreg/internal/adminconfig/secrets"
	"cidreg/internal/platform/middleware"
	"cidreg/internal/registry/genesis"
	"cidreg/internal/transport/http/shared"
	dErrors "cidreg/pkg/domain-errors"
	"cidreg/pkg/requestcontext"
)

const adminSecretHeader = "X-Admin-Secret"

// Handler handles admin endpoints.
type Handler struct {
	logger     *slog.Logger
	store      *adminconfig.Store
	clock      *genesis.Clock
	secretHash string
}

// New creates a new admin Handler. secretHash is the bcrypt hash of the shared
// admin secret; an empty hash disables the whole admin surface.
func New(store *adminconfig.Store, clock *genesis.Clock, logger *slog.Logger, secretHash string) *Handler {
	return &Handler{
		logger:     logger,
		store:      store,
		clock:      clock,
		secretHash: secretHash,
	}
}

// Register registers the admin routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(10 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(h.requireAdmin)

	router.Post("/registry/activate", h.handleActivate)
	router.Post("/registry/enabled", h.handleSetEnabled)
	router.Post("/registry/base-price", h.handleSetBasePrice)
	router.Get("/registry/params", h.handleGetParams)

	r.Mount("/admin", router)
}

// requireAdmin verifies the shared secret header against the stored bcrypt
// hash.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if h.secretHash == "" {
			shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin surface is disabled"))
			return
		}
		if err := secrets.Verify(r.Header.Get(adminSecretHeader), h.secretHash); err != nil {
			h.logger.WarnContext(ctx, "admin authentication failed",
				"request_id", requestcontext.RequestID(ctx),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid admin secret"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type setBasePriceRequest struct {
	BasePrice uint64 `json:"base_price"`
}

type activateResponse struct {
	ActivatedAt time.Time `json:"activated_at"`
}

type paramsResponse struct {
	Enabled      bool       `json:"enabled"`
	BasePrice    uint64     `json:"base_price"`
	Treasury     string     `json:"treasury"`
	CIDTypeLabel string     `json:"cid_type_label"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
}

// handleActivate records the genesis timestamp. Succeeds at most once for the
// lifetime of the registry.
func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := requestcontext.Now(ctx)

	if err := h.clock.Activate(ctx, now); err != nil {
		h.logFailure(ctx, "activate", err)
		shared.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "registry activated",
		"activated_at", now,
		"request_id", requestcontext.RequestID(ctx),
	)
	shared.WriteJSON(w, http.StatusCreated, activateResponse{ActivatedAt: now})
}

func (h *Handler) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.store.SetEnabled(ctx, req.Enabled); err != nil {
		h.logFailure(ctx, "set enabled", err)
		shared.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "registry enabled flag changed",
		"enabled", req.Enabled,
		"request_id", requestcontext.RequestID(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetBasePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setBasePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.store.SetBasePrice(ctx, req.BasePrice); err != nil {
		h.logFailure(ctx, "set base price", err)
		shared.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "registry base price changed",
		"base_price", req.BasePrice,
		"request_id", requestcontext.RequestID(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetParams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enabled, err := h.store.Enabled(ctx)
	if err != nil {
		h.logFailure(ctx, "get params", err)
		shared.WriteError(w, err)
		return
	}
	basePrice, err := h.store.BasePrice(ctx)
	if err != nil {
		h.logFailure(ctx, "get params", err)
		shared.WriteError(w, err)
		return
	}
	treasury, err := h.store.TreasuryAddress(ctx)
	if err != nil {
		h.logFailure(ctx, "get params", err)
		shared.WriteError(w, err)
		return
	}
	label, err := h.store.CIDTypeLabel(ctx)
	if err != nil {
		h.logFailure(ctx, "get params", err)
		shared.WriteError(w, err)
		return
	}

	resp := paramsResponse{
		Enabled:      enabled,
		BasePrice:    basePrice,
		Treasury:     treasury.String(),
		CIDTypeLabel: label,
	}
	// Activation is optional state; absence is not an error here.
	if start, err := h.clock.StartTime(ctx); err == nil {
		resp.ActivatedAt = &start
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) logFailure(ctx context.Context, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "admin operation failed",
			"op", op,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	h.logger.WarnContext(ctx, "admin operation rejected",
		"op", op,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
