package booking

import (
	"context"
	"time"

	"github.com/bookify/bookify-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	ListWindowsForDate(
		ctx context.Context,
		serviceID uint,
		date time.Time,
	) ([]models.AvailabilityWindow, error)

	// -------- Booking (admission) --------
	// AdmitBooking is the commit point: it atomically re-checks conflicts
	// against the persisted state and inserts the booking. Concurrent
	// overlapping attempts on the same service are serialized so that at
	// most one succeeds; losers get a slot_unavailable business error.
	AdmitBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change / read) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListAllBookings(
		ctx context.Context,
	) ([]models.Booking, error)

	HasBookingsForService(
		ctx context.Context,
		serviceID uint,
	) (bool, error)
}
