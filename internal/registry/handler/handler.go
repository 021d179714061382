// Package handler exposes the registry over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cidreg/internal/platform/metrics"
	"cidreg/internal/platform/middleware"
	"cidreg/internal/registry/models"
	"cidreg/internal/registry/service"
	"cidreg/internal/transport/http/shared"
	"cidreg/pkg/domain"
	dErrors "cidreg/pkg/domain-errors"
	"cidreg/pkg/requestcontext"
)

// Service defines the registry operations the HTTP layer needs.
type Service interface {
	Register(ctx context.Context, caller domain.Address, cid domain.CID) (*service.RegistrationResult, error)
	Renew(ctx context.Context, caller domain.Address, cid domain.CID) (*service.RegistrationResult, error)
	SetAddress(ctx context.Context, caller domain.Address, cid domain.CID, target domain.Address) (*models.Record, error)
	ClearAddress(ctx context.Context, caller domain.Address, cid domain.CID) (*models.Record, error)
	Resolve(ctx context.Context, cid domain.CID) (*domain.Address, error)
	Status(ctx context.Context, cid domain.CID) (*service.Status, error)
	CurrentPrice(ctx context.Context) (uint64, error)
	RegistrationEvents(ctx context.Context, cid domain.CID) ([]models.RegistrationEvent, error)
	AddressChangeEvents(ctx context.Context, cid domain.CID) ([]models.AddressChangeEvent, error)
}

// Handler handles registry endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	metrics      *metrics.Metrics
	jwtValidator middleware.TokenValidator
}

// New creates a new registry Handler.
func New(
	registry Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:       logger,
		registry:     registry,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	// Lifecycle mutations require an authenticated caller.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/registry/{cid}/register", h.handleRegister)
		r.Post("/registry/{cid}/renew", h.handleRenew)
		r.Put("/registry/{cid}/address", h.handleSetAddress)
		r.Delete("/registry/{cid}/address", h.handleClearAddress)
	})

	// Reads are public.
	router.Get("/registry/price", h.handlePrice)
	router.Get("/registry/{cid}", h.handleStatus)
	router.Get("/registry/{cid}/events", h.handleEvents)
	router.Get("/resolve/{cid}", h.handleResolve)

	r.Mount("/", router)
}

type registrationResponse struct {
	Fee    uint64         `json:"fee"`
	Record *models.Record `json:"record"`
}

type setAddressRequest struct {
	Target string `json:"target"`
}

type resolveResponse struct {
	CID    string          `json:"cid"`
	Target *domain.Address `json:"target"`
}

type eventsResponse struct {
	Registrations  []models.RegistrationEvent  `json:"registrations"`
	AddressChanges []models.AddressChangeEvent `json:"address_changes"`
}

type priceResponse struct {
	Price uint64 `json:"price"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	res, err := h.registry.Register(ctx, requestcontext.Caller(ctx), cid)
	if err != nil {
		h.logFailure(ctx, "register", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, registrationResponse{Fee: res.Fee, Record: res.Record})
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	res, err := h.registry.Renew(ctx, requestcontext.Caller(ctx), cid)
	if err != nil {
		h.logFailure(ctx, "renew", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, registrationResponse{Fee: res.Fee, Record: res.Record})
}

func (h *Handler) handleSetAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req setAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	target, err := domain.ParseAddress(req.Target)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	rec, err := h.registry.SetAddress(ctx, requestcontext.Caller(ctx), cid, target)
	if err != nil {
		h.logFailure(ctx, "set address", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleClearAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	rec, err := h.registry.ClearAddress(ctx, requestcontext.Caller(ctx), cid)
	if err != nil {
		h.logFailure(ctx, "clear address", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	status, err := h.registry.Status(ctx, cid)
	if err != nil {
		h.logFailure(ctx, "status", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	target, err := h.registry.Resolve(ctx, cid)
	if err != nil {
		h.logFailure(ctx, "resolve", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resolveResponse{CID: cid.String(), Target: target})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cid, err := domain.ParseCID(chi.URLParam(r, "cid"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	registrations, err := h.registry.RegistrationEvents(ctx, cid)
	if err != nil {
		h.logFailure(ctx, "list events", cid, err)
		shared.WriteError(w, err)
		return
	}
	changes, err := h.registry.AddressChangeEvents(ctx, cid)
	if err != nil {
		h.logFailure(ctx, "list events", cid, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, eventsResponse{Registrations: registrations, AddressChanges: changes})
}

func (h *Handler) handlePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	price, err := h.registry.CurrentPrice(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute price",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, priceResponse{Price: price})
}

// logFailure logs domain rejections at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, op string, cid domain.CID, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "registry operation failed",
			"op", op,
			"cid", cid.String(),
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	h.logger.WarnContext(ctx, "registry operation rejected",
		"op", op,
		"cid", cid.String(),
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
