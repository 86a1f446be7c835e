package cultures

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

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	page, err := h.service.List(ctx)
	if err != nil {
		log.Error("admin cultures list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin cultures list: ok", slog.Int("count", len(page.Items)))
	transport.WriteList(w, page.Items, page.Truncated)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	req, ok := h.decode(w, r, log, "admin cultures create")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("admin cultures create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin cultures create: ok", slog.String("culture_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	req, ok := h.decode(w, r, log, "admin cultures update")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin cultures update: not found", slog.String("culture_id", id))
			transport.WriteError(w, http.StatusNotFound, "Culture non trouvée", nil)
			return
		}
		log.Error("admin cultures update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin cultures update: ok", slog.String("culture_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin cultures delete: not found", slog.String("culture_id", id))
			transport.WriteError(w, http.StatusNotFound, "Culture non trouvée", nil)
			return
		}
		log.Error("admin cultures delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin cultures delete: ok", slog.String("culture_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, area string) (UpsertRequest, bool) {
	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn(area + ": invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn(area + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return req, false
	}
	return req, true
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
