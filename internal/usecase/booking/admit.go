package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookify/bookify-api/internal/audit"
	"github.com/bookify/bookify-api/internal/clock"
	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/models"
	"github.com/bookify/bookify-api/internal/notify"
)

// SlotCache is the optional read-through cache for computed day slots.
// Implementations must treat a miss as ([]string(nil), nil).
type SlotCache interface {
	GetSlots(ctx context.Context, serviceID uint, date string) ([]string, error)
	SetSlots(ctx context.Context, serviceID uint, date string, slots []string) error
	InvalidateSlots(ctx context.Context, serviceID uint, date string) error
}

// ======================================================
// INPUT
// ======================================================

type AdmitBookingInput struct {
	UserID    uint
	UserEmail string

	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// ======================================================
// USE CASE
// ======================================================

type AdmitBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  SlotCache
	now    clock.Clock
}

func NewAdmitBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache SlotCache,
	now clock.Clock,
) *AdmitBooking {
	if now == nil {
		now = clock.System()
	}
	return &AdmitBooking{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
		now:    now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request against the server-side availability
// configuration (never a client-submitted slot list) and admits the
// booking. Validation order is fixed: service lookup, past check,
// availability presence, window/grid match, then the atomic
// conflict-check-and-insert in the repository.
func (uc *AdmitBooking) Execute(
	ctx context.Context,
	in AdmitBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Service
	// --------------------------------------------------
	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		// Only a missing row is the caller's problem; anything else is
		// infrastructure failure and must not masquerade as a 404.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2. Requested interval
	// --------------------------------------------------
	date, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	start, err := domain.CombineDateAndTime(date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// --------------------------------------------------
	// 3. Past check
	// --------------------------------------------------
	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness(httperr.CodeStartTimeInPast)
	}

	// --------------------------------------------------
	// 4. Availability windows for the date
	// --------------------------------------------------
	windows, err := uc.repo.ListWindowsForDate(ctx, in.ServiceID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeNoAvailability)
	}

	// --------------------------------------------------
	// 5. Grid alignment + window containment
	// --------------------------------------------------
	if w := domain.MatchWindow(windows, date, start, end, svc.DurationMinutes); w == nil {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}

	// --------------------------------------------------
	// 6+7. Atomic conflict check + persist (commit point)
	// --------------------------------------------------
	b := &models.Booking{
		Reference: uuid.NewString(),
		UserID:    in.UserID,
		ServiceID: in.ServiceID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.AdmitBooking(ctx, b); err != nil {
		return nil, err
	}

	b.Service = *svc

	// --------------------------------------------------
	// 8. Best-effort side effects
	// --------------------------------------------------
	if uc.cache != nil {
		if err := uc.cache.InvalidateSlots(ctx, in.ServiceID, in.Date); err != nil {
			log.Println("slot cache invalidation failed:", err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.Event{
		Type:       notify.EventBookingConfirmed,
		Recipient:  in.UserEmail,
		BookingRef: b.Reference,
		ServiceID:  b.ServiceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
	})

	return b, nil
}
