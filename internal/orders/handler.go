package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mikombo-backend/internal/httpx"
	"mikombo-backend/internal/middleware"
	"mikombo-backend/internal/transport"
	"mikombo-backend/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("orders create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("orders create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, user, req)
	if err != nil {
		log.Error("orders create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("orders create: ok", slog.String("order_id", item.ID), slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.service.ListForUser(ctx, user.ID)
	if err != nil {
		log.Error("orders mine: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	transport.WriteList(w, page.Items, page.Truncated)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	page, err := h.service.ListAll(ctx)
	if err != nil {
		log.Error("admin orders list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin orders list: ok", slog.Int("count", len(page.Items)))
	transport.WriteList(w, page.Items, page.Truncated)
}

func (h *Handler) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	status, err := httpx.ReadStatus(r)
	if err != nil {
		log.Warn("admin orders status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req := StatusRequest{Status: status}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin orders status: invalid status", slog.String("statut", status))
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.SetStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin orders status: not found", slog.String("order_id", id))
			transport.WriteError(w, http.StatusNotFound, "Commande non trouvée", nil)
			return
		}
		log.Error("admin orders status: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin orders status: ok", slog.String("order_id", id), slog.String("statut", item.Status))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
