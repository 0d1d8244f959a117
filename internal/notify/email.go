package notify

import (
	"context"
	"log"
)

// EmailSender is the outbound mail collaborator. Delivery is not wired to a
// provider yet; messages are logged so the integration point stays visible.
type EmailSender struct{}

func NewEmailSender() *EmailSender {
	return &EmailSender{}
}

func (s *EmailSender) SendBookingConfirmation(ctx context.Context, recipient, bookingRef string) error {
	log.Printf("email: booking confirmation to %s for booking %s", recipient, bookingRef)
	return nil
}

func (s *EmailSender) SendCancellationNotification(ctx context.Context, recipient, bookingRef, reason string) error {
	log.Printf("email: cancellation notice to %s for booking %s (reason: %q)", recipient, bookingRef, reason)
	return nil
}
