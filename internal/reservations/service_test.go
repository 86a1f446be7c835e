package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type recordingNotifier struct {
	sent []models.Reservation
}

func (n *recordingNotifier) ReservationConfirmed(r models.Reservation) {
	n.sent = append(n.sent, r)
}

var visitor = models.User{ID: "u1", Email: "awa@example.com", FirstName: "Awa", LastName: "Kabila", Phone: "+243"}

func newTestService() (*Service, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewService(NewRepository(store.NewMemoryCollection[models.Reservation]()), n), n
}

func request(adults, children int) CreateRequest {
	return CreateRequest{VisitDate: "2026-06-01", VisitTime: "10:00", VisitType: "guidee", Adults: &adults, Children: &children}
}

func TestPrice(t *testing.T) {
	if got := Price(2, 1); got != 25.0 {
		t.Fatalf("expected 25.0, got %v", got)
	}
	if got := Price(0, 3); got != 15.0 {
		t.Fatalf("expected 15.0, got %v", got)
	}
}

func TestCreateConfirmsAndNotifies(t *testing.T) {
	svc, notifier := newTestService()

	item, err := svc.Create(context.Background(), visitor, request(2, 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.TotalPrice != 25.0 || item.Status != models.ReservationConfirmed {
		t.Fatalf("unexpected reservation %+v", item)
	}
	if item.Name != "Awa Kabila" || item.UserID != "u1" || item.Email != "awa@example.com" {
		t.Fatalf("unexpected customer snapshot %+v", item.Customer)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].ID != item.ID {
		t.Fatalf("expected one notification for the reservation")
	}
}

func TestCreateRejectsEmptyParty(t *testing.T) {
	svc, notifier := newTestService()
	if _, err := svc.Create(context.Background(), visitor, request(0, 0)); !errors.Is(err, ErrNoVisitors) {
		t.Fatalf("expected ErrNoVisitors, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notification")
	}
}

func TestListForUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	other := visitor
	other.ID = "u2"
	for _, u := range []models.User{visitor, other, visitor} {
		if _, err := svc.Create(ctx, u, request(1, 0)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.ListForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 reservations for u1, got %d", len(page.Items))
	}
}

func TestSetStatusKeepsCreatedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	item, err := svc.Create(ctx, visitor, request(1, 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []string{models.ReservationCompleted, models.ReservationPending} {
		updated, err := svc.SetStatus(ctx, item.ID, status)
		if err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
		if updated.Status != status || !updated.CreatedAt.Equal(clock) {
			t.Fatalf("unexpected reservation after status %s: %+v", status, updated)
		}
	}

	if _, err := svc.SetStatus(ctx, "missing", models.ReservationCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
