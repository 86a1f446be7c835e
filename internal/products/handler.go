package products

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
	"mikombo-backend/internal/storage"
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

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.service.ListPublic(ctx, r.URL.Query().Get("categorie"))
	if err != nil {
		log.Error("products public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("products public list: ok", slog.Int("count", len(page.Items)))
	transport.WriteList(w, page.Items, page.Truncated)
}

func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("products get: not found", slog.String("product_id", id))
			transport.WriteError(w, http.StatusNotFound, "Produit non trouvé", nil)
			return
		}
		log.Error("products get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	page, err := h.service.ListAdmin(ctx)
	if err != nil {
		log.Error("admin products list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin products list: ok", slog.Int("count", len(page.Items)))
	transport.WriteList(w, page.Items, page.Truncated)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	req, ok := h.decode(w, r, log, "admin products create")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("admin products create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin products create: ok", slog.String("product_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	req, ok := h.decode(w, r, log, "admin products update")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin products update: not found", slog.String("product_id", id))
			transport.WriteError(w, http.StatusNotFound, "Produit non trouvé", nil)
			return
		}
		log.Error("admin products update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin products update: ok", slog.String("product_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin products delete: not found", slog.String("product_id", id))
			transport.WriteError(w, http.StatusNotFound, "Produit non trouvé", nil)
			return
		}
		log.Error("admin products delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin products delete: ok", slog.String("product_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) AdminUploadPhoto(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	upload, err := httpx.ReadUpload(w, r, "file")
	if err != nil {
		log.Warn("admin products upload: invalid upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid upload", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	url, err := h.service.AddPhoto(ctx, id, upload.Filename, upload.Data)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.Warn("admin products upload: not found", slog.String("product_id", id))
			transport.WriteError(w, http.StatusNotFound, "Produit non trouvé", nil)
		case errors.Is(err, storage.ErrNotImage):
			log.Warn("admin products upload: not an image", slog.String("product_id", id))
			transport.WriteError(w, http.StatusBadRequest, "file must be an image", nil)
		default:
			log.Error("admin products upload: storage error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		}
		return
	}

	log.Info("admin products upload: ok", slog.String("product_id", id), slog.String("photo_url", url))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"photo_url": url})
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
