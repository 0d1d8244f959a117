package booking

import (
	"time"

	"github.com/bookify/bookify-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel marks the booking cancelled, preserving its interval. Cancelling
// an already-cancelled booking is a no-op so retries stay idempotent; the
// return value tells the caller whether anything changed.
func Cancel(b *models.Booking, now time.Time, reason string) bool {
	if Status(b.Status) == StatusCancelled {
		return false
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	if reason != "" {
		b.CancellationReason = reason
	}
	return true
}

// CanActOn reports whether the actor may mutate the booking: the owner or
// an admin. Authorization context (actor id + role) is supplied by the
// caller, pre-validated by the auth layer.
func CanActOn(b *models.Booking, actorID uint, actorRole string) bool {
	return actorRole == RoleAdmin || b.UserID == actorID
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Overlaps is the half-open interval intersection test used everywhere a
// conflict decision is made: [aStart, aEnd) vs [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
