package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/models"
	"gorm.io/gorm"
)

// memRepo is an in-memory Repository honouring the same contract as the
// gorm implementation: AdmitBooking is an atomic conditional insert, so
// concurrent overlapping attempts see exactly one winner.
type memRepo struct {
	mu       sync.Mutex
	services map[uint]*models.Service
	users    map[uint]*models.User
	windows  []models.AvailabilityWindow
	bookings map[uint]*models.Booking
	nextID   uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		services: make(map[uint]*models.Service),
		users:    make(map[uint]*models.User),
		bookings: make(map[uint]*models.Booking),
	}
}

func (r *memRepo) GetServiceByID(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *svc
	return &out, nil
}

func (r *memRepo) ListWindowsForDate(ctx context.Context, serviceID uint, date time.Time) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.ServiceID == serviceID && domain.AppliesTo(&w, date) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memRepo) AdmitBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.ServiceID != b.ServiceID {
			continue
		}
		if !domain.Blocks(domain.Status(existing.Status)) {
			continue
		}
		if domain.Overlaps(existing.StartTime, existing.EndTime, b.StartTime, b.EndTime) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
	}

	r.nextID++
	b.ID = r.nextID
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *memRepo) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *b
	if svc, ok := r.services[b.ServiceID]; ok {
		out.Service = *svc
	}
	if user, ok := r.users[b.UserID]; ok {
		out.User = *user
	}
	return &out, nil
}

func (r *memRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *memRepo) ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memRepo) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *memRepo) HasBookingsForService(ctx context.Context, serviceID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ServiceID == serviceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) activeBookingCount(serviceID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && domain.Blocks(domain.Status(b.Status)) {
			count++
		}
	}
	return count
}

// Compile-time check
var _ domain.Repository = (*memRepo)(nil)

// failingRepo simulates an unreachable database: every lookup fails with
// the wrapped infrastructure error instead of a missing-row sentinel.
type failingRepo struct {
	*memRepo
	err error
}

func (r *failingRepo) GetServiceByID(ctx context.Context, id uint) (*models.Service, error) {
	return nil, r.err
}

func (r *failingRepo) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	return nil, r.err
}

var _ domain.Repository = (*failingRepo)(nil)
