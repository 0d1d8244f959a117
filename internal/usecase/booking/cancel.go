package booking

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/bookify/bookify-api/internal/audit"
	"github.com/bookify/bookify-api/internal/clock"
	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/models"
	"github.com/bookify/bookify-api/internal/notify"
)

type CancelBookingInput struct {
	BookingID uint

	ActorID   uint
	ActorRole string

	Reason string
}

type CancelBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  SlotCache
	now    clock.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache SlotCache,
	now clock.Clock,
) *CancelBooking {
	if now == nil {
		now = clock.System()
	}
	return &CancelBooking{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
		now:    now,
	}
}

// Execute transitions the booking to cancelled, freeing its interval for
// future admissions. Re-cancelling is an idempotent success: the booking
// is returned unchanged and no side effects fire a second time.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
		}
		return nil, err
	}

	if !domain.CanActOn(b, in.ActorID, in.ActorRole) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if !domain.Cancel(b, uc.now(), in.Reason) {
		return b, nil
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		date := b.StartTime.Format("2006-01-02")
		if err := uc.cache.InvalidateSlots(ctx, b.ServiceID, date); err != nil {
			log.Println("slot cache invalidation failed:", err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// The notice goes to the booking owner, who is not necessarily the
	// actor (an admin may cancel on a customer's behalf).
	uc.notify.Dispatch(notify.Event{
		Type:       notify.EventBookingCancelled,
		Recipient:  b.User.Email,
		BookingRef: b.Reference,
		ServiceID:  b.ServiceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		Reason:     in.Reason,
	})

	return b, nil
}
