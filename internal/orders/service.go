package orders

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

var ErrNotFound = errors.New("order not found")

type Notifier interface {
	OrderConfirmed(o models.Order)
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

// Total sums price x quantity over the lines. Prices are the ones the client
// sent; they are not checked against the catalog.
func Total(items []models.OrderItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity)))
	}
	return sum.InexactFloat64()
}

func (s *Service) Create(ctx context.Context, user models.User, req CreateRequest) (models.Order, error) {
	now := store.Timestamp(s.now())
	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		item.Name = strings.TrimSpace(item.Name)
		item.Unit = strings.TrimSpace(item.Unit)
		items[i] = item
	}

	order := models.Order{
		ID:              uuid.NewString(),
		Customer:        models.SnapshotOf(user),
		Items:           items,
		PickupMode:      strings.TrimSpace(req.PickupMode),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Status:          models.OrderConfirmed,
		Total:           Total(items),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return models.Order{}, err
	}

	if s.notifier != nil {
		s.notifier.OrderConfirmed(order)
	}
	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) (store.Page[models.Order], error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) (store.Page[models.Order], error) {
	return s.repo.ListAll(ctx)
}

// SetStatus accepts any status from any status and moves updated_at forward,
// at least one millisecond past its previous value.
func (s *Service) SetStatus(ctx context.Context, id, status string) (models.Order, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Order{}, notFound(err)
	}

	updatedAt := store.Timestamp(s.now())
	if !updatedAt.After(current.UpdatedAt) {
		updatedAt = current.UpdatedAt.Add(time.Millisecond)
	}

	item, err := s.repo.SetStatus(ctx, id, status, updatedAt)
	return item, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
