package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/bookify/bookify-api/internal/clock"
	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
)

type GetSlotsInput struct {
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type GetSlots struct {
	repo  domain.Repository
	cache SlotCache
	now   clock.Clock
}

func NewGetSlots(repo domain.Repository, cache SlotCache, now clock.Clock) *GetSlots {
	if now == nil {
		now = clock.System()
	}
	return &GetSlots{repo: repo, cache: cache, now: now}
}

// Execute renders the candidate slots for a date. The result is advisory:
// admission re-derives everything server-side, so stale cache entries can
// at worst show a slot that will lose the admission race.
func (uc *GetSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) ([]string, error) {

	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	if uc.cache != nil {
		if cached, err := uc.cache.GetSlots(ctx, in.ServiceID, in.Date); err != nil {
			log.Println("slot cache read failed:", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	windows, err := uc.repo.ListWindowsForDate(ctx, in.ServiceID, date)
	if err != nil {
		return nil, err
	}

	slots := domain.SlotsForDate(date, windows, svc.DurationMinutes, uc.now())

	if uc.cache != nil {
		if err := uc.cache.SetSlots(ctx, in.ServiceID, in.Date, slots); err != nil {
			log.Println("slot cache write failed:", err)
		}
	}

	return slots, nil
}
