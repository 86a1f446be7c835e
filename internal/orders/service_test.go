package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/validation"
)

type recordingNotifier struct {
	sent []models.Order
}

func (n *recordingNotifier) OrderConfirmed(o models.Order) {
	n.sent = append(n.sent, o)
}

var buyer = models.User{ID: "u1", Email: "awa@example.com", FirstName: "Awa", LastName: "Kabila"}

func newTestService() (*Service, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewService(NewRepository(store.NewMemoryCollection[models.Order]()), n), n
}

func sampleRequest() CreateRequest {
	return CreateRequest{
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Miel", Price: 2.5, Quantity: 2, Unit: "pot"},
			{ProductID: "p2", Name: "Oeufs", Price: 1.0, Quantity: 3, Unit: "douzaine"},
		},
		PickupMode: "retrait",
	}
}

func TestTotal(t *testing.T) {
	if got := Total(sampleRequest().Items); got != 8.0 {
		t.Fatalf("expected 8.0, got %v", got)
	}
	items := []models.OrderItem{{Price: 0.1, Quantity: 3}}
	if got := Total(items); got != 0.3 {
		t.Fatalf("expected exact 0.3, got %v", got)
	}
}

func TestCreateConfirmsAndNotifies(t *testing.T) {
	svc, notifier := newTestService()
	order, err := svc.Create(context.Background(), buyer, sampleRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Total != 8.0 || order.Status != models.OrderConfirmed {
		t.Fatalf("unexpected order %+v", order)
	}
	if !order.UpdatedAt.Equal(order.CreatedAt) {
		t.Fatalf("expected updated_at == created_at on creation")
	}
	if order.Name != "Awa Kabila" || len(notifier.sent) != 1 {
		t.Fatalf("expected snapshot and one notification")
	}
}

func TestSetStatusAdvancesUpdatedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	order, err := svc.Create(ctx, buyer, sampleRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Clock has not moved: updated_at must still increase.
	first, err := svc.SetStatus(ctx, order.ID, models.OrderPreparing)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !first.UpdatedAt.After(order.UpdatedAt) {
		t.Fatalf("expected updated_at to increase, got %v then %v", order.UpdatedAt, first.UpdatedAt)
	}

	clock = clock.Add(time.Minute)
	second, err := svc.SetStatus(ctx, order.ID, models.OrderPending)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !second.UpdatedAt.Equal(clock) || second.Status != models.OrderPending {
		t.Fatalf("unexpected order %+v", second)
	}
	if !second.CreatedAt.Equal(order.CreatedAt) {
		t.Fatalf("created_at changed")
	}
}

func TestSetStatusUnknown(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.SetStatus(context.Background(), "missing", models.OrderReady); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	val := validation.New()

	empty := CreateRequest{PickupMode: "retrait"}
	if err := val.Struct(empty); err == nil {
		t.Fatalf("expected error for order without items")
	}

	bad := sampleRequest()
	bad.Items[0].Quantity = 0
	if err := val.Struct(bad); err == nil {
		t.Fatalf("expected error for zero quantity")
	}

	if err := val.Struct(sampleRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
