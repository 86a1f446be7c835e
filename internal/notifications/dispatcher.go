package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mikombo-backend/internal/models"
)

const sendTimeout = 8 * time.Second

type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Dispatcher sends confirmation emails in the background. Failures are
// logged and dropped; the request that triggered the email never sees them.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
	wg     sync.WaitGroup
}

// NewDispatcher accepts a nil sender, in which case every call is a no-op.
func NewDispatcher(sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

func (d *Dispatcher) Enabled() bool {
	return d != nil && d.sender != nil
}

func (d *Dispatcher) ReservationConfirmed(r models.Reservation) {
	if !d.Enabled() {
		return
	}
	msg, err := BuildReservationEmail(r)
	if err != nil {
		d.log.Warn("reservation email: render failed", slog.String("reservation_id", r.ID), slog.String("error", err.Error()))
		return
	}
	d.dispatch("reservation email", r.ID, msg)
}

func (d *Dispatcher) OrderConfirmed(o models.Order) {
	if !d.Enabled() {
		return
	}
	msg, err := BuildOrderEmail(o)
	if err != nil {
		d.log.Warn("order email: render failed", slog.String("order_id", o.ID), slog.String("error", err.Error()))
		return
	}
	d.dispatch("order email", o.ID, msg)
}

func (d *Dispatcher) dispatch(area, id string, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		messageID, err := d.sender.Send(ctx, msg)
		if err != nil {
			d.log.Warn(area+": send failed", slog.String("id", id), slog.String("error", err.Error()))
			return
		}
		d.log.Info(area+": sent", slog.String("id", id), slog.String("message_id", messageID))
	}()
}

// Wait blocks until in-flight sends finish.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
