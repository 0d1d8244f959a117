package notify

import (
	"context"
	"log"
	"time"

	"github.com/bookify/bookify-api/internal/events"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
)

type Event struct {
	Type       EventType
	Recipient  string
	BookingRef string
	ServiceID  uint
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	Reason     string
}

type Sender interface {
	SendBookingConfirmation(ctx context.Context, recipient, bookingRef string) error
	SendCancellationNotification(ctx context.Context, recipient, bookingRef, reason string) error
}

// Dispatcher decouples notification delivery from the request path: events
// are handed to a background worker over a buffered channel, never holding
// the admission critical section. A full queue drops the event rather than
// blocking the API; failures are logged and never surfaced to the booking
// caller.
type Dispatcher struct {
	sender   Sender
	producer *events.Producer
	queue    chan Event
}

func NewDispatcher(sender Sender, producer *events.Producer) *Dispatcher {
	d := &Dispatcher{
		sender:   sender,
		producer: producer,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		d.deliver(ctx, ev)
		cancel()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	if d.sender != nil {
		var err error
		switch ev.Type {
		case EventBookingConfirmed:
			err = d.sender.SendBookingConfirmation(ctx, ev.Recipient, ev.BookingRef)
		case EventBookingCancelled:
			err = d.sender.SendCancellationNotification(ctx, ev.Recipient, ev.BookingRef, ev.Reason)
		}
		if err != nil {
			log.Println("notify error:", err)
		}
	}

	if d.producer != nil {
		event := events.BookingEvent{
			Type:      string(ev.Type),
			Reference: ev.BookingRef,
			ServiceID: ev.ServiceID,
			UserEmail: ev.Recipient,
			StartTime: ev.StartTime,
			EndTime:   ev.EndTime,
			Status:    ev.Status,
			Reason:    ev.Reason,
		}
		if err := d.producer.Publish(ctx, ev.BookingRef, event); err != nil {
			log.Println("notify: publish error:", err)
		}
	}
}

// Dispatch never blocks the caller. A nil dispatcher is a no-op so callers
// don't need to guard the disabled case.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
