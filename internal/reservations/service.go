package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

var (
	ErrNotFound   = errors.New("reservation not found")
	ErrNoVisitors = errors.New("reservation needs at least one visitor")
)

var (
	adultRate = decimal.NewFromInt(10)
	childRate = decimal.NewFromInt(5)
)

type Notifier interface {
	ReservationConfirmed(r models.Reservation)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Price returns adults x 10 + children x 5.
func Price(adults, children int) float64 {
	total := adultRate.Mul(decimal.NewFromInt(int64(adults))).
		Add(childRate.Mul(decimal.NewFromInt(int64(children))))
	return total.InexactFloat64()
}

// Create books a visit for user. Bookings are confirmed on creation and the
// confirmation email is sent in the background.
func (s *Service) Create(ctx context.Context, user models.User, req CreateRequest) (models.Reservation, error) {
	adults, children := *req.Adults, *req.Children
	if adults+children < 1 {
		return models.Reservation{}, ErrNoVisitors
	}

	item := models.Reservation{
		ID:         uuid.NewString(),
		Customer:   models.SnapshotOf(user),
		VisitDate:  req.VisitDate,
		VisitTime:  strings.TrimSpace(req.VisitTime),
		VisitType:  strings.TrimSpace(req.VisitType),
		Adults:     adults,
		Children:   children,
		TotalPrice: Price(adults, children),
		Status:     models.ReservationConfirmed,
		CreatedAt:  store.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return models.Reservation{}, err
	}

	if s.notifier != nil {
		s.notifier.ReservationConfirmed(item)
	}
	return item, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) (store.Page[models.Reservation], error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) (store.Page[models.Reservation], error) {
	return s.repo.ListAll(ctx)
}

// SetStatus accepts any status from any status.
func (s *Service) SetStatus(ctx context.Context, id, status string) (models.Reservation, error) {
	item, err := s.repo.SetStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return item, ErrNotFound
	}
	return item, err
}
