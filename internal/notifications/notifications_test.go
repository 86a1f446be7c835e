package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"mikombo-backend/internal/models"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingSender struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	if s.err != nil {
		return "", s.err
	}
	return "msg-1", nil
}

func sampleReservation() models.Reservation {
	return models.Reservation{
		ID:         "res-1",
		Customer:   models.Customer{UserID: "u1", Name: "Awa Kabila", Email: "awa@example.com"},
		VisitDate:  "2026-06-01",
		VisitTime:  "10:00",
		VisitType:  "guidee",
		Adults:     2,
		Children:   1,
		TotalPrice: 25,
	}
}

func TestReservationEmail(t *testing.T) {
	msg, err := BuildReservationEmail(sampleReservation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if msg.ToEmail != "awa@example.com" || msg.Subject != reservationSubject {
		t.Fatalf("unexpected envelope %+v", msg)
	}
	for _, want := range []string{"Bonjour Awa Kabila", "res-1", "2026-06-01", "25.00 USD"} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("expected %q in body", want)
		}
	}
}

func TestOrderEmailLinesAndAddress(t *testing.T) {
	order := models.Order{
		ID:       "cmd-1",
		Customer: models.Customer{Name: "Awa Kabila", Email: "awa@example.com"},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Miel", Price: 2.5, Quantity: 2, Unit: "pot"},
			{ProductID: "p2", Name: "Oeufs", Price: 1, Quantity: 3, Unit: "douzaine"},
		},
		PickupMode: "livraison",
		Total:      8,
	}

	msg, err := BuildOrderEmail(order)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"Miel - 2 pot x 2.50 USD = 5.00 USD", "Oeufs - 3 douzaine x 1.00 USD = 3.00 USD", "8.00 USD"} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("expected %q in body:\n%s", want, msg.HTML)
		}
	}
	if strings.Contains(msg.HTML, "Adresse de livraison") {
		t.Fatalf("expected no address line when address is empty")
	}

	order.DeliveryAddress = "Av. <Lumumba> 12"
	msg, err = BuildOrderEmail(order)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(msg.HTML, "Av. &lt;Lumumba&gt; 12") {
		t.Fatalf("expected escaped address in body")
	}
}

func TestDispatcherSendsInBackground(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, discard)

	d.ReservationConfirmed(sampleReservation())
	d.OrderConfirmed(models.Order{ID: "cmd-1", Customer: models.Customer{Email: "awa@example.com"}})
	d.Wait()

	if len(sender.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sender.msgs))
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("brevo down")}
	d := NewDispatcher(sender, discard)
	d.ReservationConfirmed(sampleReservation())
	d.Wait()
	if len(sender.msgs) != 1 {
		t.Fatalf("expected one attempt, got %d", len(sender.msgs))
	}
}

func TestDispatcherWithoutSender(t *testing.T) {
	d := NewDispatcher(nil, discard)
	if d.Enabled() {
		t.Fatalf("expected disabled dispatcher")
	}
	d.ReservationConfirmed(sampleReservation())
	d.Wait()
}

func TestNewBrevoClientRequiresKeyAndSender(t *testing.T) {
	if NewBrevoClient("", "noreply@mikombopark.com", "", false) != nil {
		t.Fatalf("expected nil client without api key")
	}
	if NewBrevoClient("key", " ", "", false) != nil {
		t.Fatalf("expected nil client without sender")
	}
}

func TestBrevoClientSend(t *testing.T) {
	var got brevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@brevo>"}`))
	}))
	defer srv.Close()

	c := NewBrevoClient("secret", "noreply@mikombopark.com", "Mikombo Park", true)
	c.endpoint = srv.URL

	id, err := c.Send(context.Background(), Message{ToEmail: "awa@example.com", ToName: "Awa", Subject: "s", HTML: "<p>x</p>", Tag: "reservation"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "<abc@brevo>" || apiKey != "secret" {
		t.Fatalf("unexpected id %q or key %q", id, apiKey)
	}
	if got.Sender.Name != "Mikombo Park" || got.To[0].Email != "awa@example.com" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "reservation" || got.ReplyTo.Email != "noreply@mikombopark.com" {
		t.Fatalf("unexpected tags or reply-to %+v", got)
	}
	if got.Headers["X-Sib-Sandbox"] != "drop" {
		t.Fatalf("expected sandbox header")
	}
}

func TestBrevoClientSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewBrevoClient("bad", "noreply@mikombopark.com", "", false)
	c.endpoint = srv.URL
	_, err := c.Send(context.Background(), Message{ToEmail: "a@b.c", Subject: "s", HTML: "x"})
	var apiErr *BrevoError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Code != "unauthorized" {
		t.Fatalf("expected BrevoError 401, got %v", err)
	}
}
