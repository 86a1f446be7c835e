// Package stats serves the admin dashboard counters.
package stats

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/middleware"
	"mikombo-backend/internal/transport"
)

type Counter interface {
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type Sources struct {
	Products     Counter
	Animals      Counter
	Cultures     Counter
	Reservations Counter
	Orders       Counter
}

type Dashboard struct {
	Products          int64 `json:"total_produits"`
	Animals           int64 `json:"total_animaux"`
	Cultures          int64 `json:"total_cultures"`
	Reservations      int64 `json:"total_reservations"`
	Orders            int64 `json:"total_commandes"`
	ReservationsToday int64 `json:"reservations_today"`
}

type Service struct {
	src      Sources
	location *time.Location
	now      func() time.Time
}

// NewService counts "today" in location, which defaults to UTC.
func NewService(src Sources, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{src: src, location: location, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	all := bson.M{}
	counts := []struct {
		dst    *int64
		src    Counter
		filter bson.M
	}{
		{&d.Products, s.src.Products, all},
		{&d.Animals, s.src.Animals, all},
		{&d.Cultures, s.src.Cultures, all},
		{&d.Reservations, s.src.Reservations, all},
		{&d.Orders, s.src.Orders, all},
		{&d.ReservationsToday, s.src.Reservations, bson.M{"date_visite": s.now().In(s.location).Format("2006-01-02")}},
	}
	for _, c := range counts {
		if *c.dst, err = c.src.Count(ctx, c.filter); err != nil {
			return Dashboard{}, err
		}
	}
	return d, nil
}

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.log
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		log = log.With(slog.String("request_id", id))
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	d, err := h.service.Dashboard(ctx)
	if err != nil {
		log.Error("admin stats: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, d)
}
