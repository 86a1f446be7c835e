// Package contact stores messages sent through the public contact form.
package contact

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mikombo-backend/internal/httpx"
	"mikombo-backend/internal/middleware"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/transport"
	"mikombo-backend/internal/validation"
)

const successMessage = "Message envoyé avec succès"

type Request struct {
	Name    string `json:"nom" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"telephone" validate:"required"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

type Service struct {
	col store.Collection[models.ContactMessage]
	now func() time.Time
}

func NewService(col store.Collection[models.ContactMessage]) *Service {
	return &Service{col: col, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, req Request) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: store.Timestamp(s.now()),
	}
	if err := s.col.Insert(ctx, msg); err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{service: service, val: val, log: log}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := h.log
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		log = log.With(slog.String("request_id", id))
	}

	var req Request
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact submit: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("contact submit: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.service.Submit(ctx, req); err != nil {
		log.Error("contact submit: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("contact submit: ok")
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": successMessage,
	})
}
