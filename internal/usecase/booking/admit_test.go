package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookify/bookify-api/internal/clock"
	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/models"
)

const (
	testDate    = "2030-06-03" // a Monday
	testTuesday = "2030-06-04"
)

func intPtr(v int) *int { return &v }

// fixture: one 60-minute service open Mondays 09:00-17:00, clock frozen the
// Sunday before at noon.
func newAdmitFixture(t *testing.T) (*memRepo, *AdmitBooking) {
	t.Helper()

	repo := newMemRepo()
	repo.services[1] = &models.Service{
		ID:              1,
		Name:            "Premium Consultation",
		PriceCents:      15000,
		Currency:        "USD",
		DurationMinutes: 60,
		Capacity:        1,
		Active:          true,
	}
	repo.users[7] = &models.User{ID: 7, Name: "Sample Customer", Email: "customer@bookify.test", Role: "customer"}
	repo.windows = []models.AvailabilityWindow{
		{ID: 1, ServiceID: 1, DayOfWeek: intPtr(1), OpenTime: "09:00", CloseTime: "17:00"},
	}

	now := clock.Fixed(time.Date(2030, 6, 2, 12, 0, 0, 0, time.Local))
	uc := NewAdmitBooking(repo, nil, nil, nil, now)

	return repo, uc
}

func admitInput(timeHHMM string) AdmitBookingInput {
	return AdmitBookingInput{
		UserID:    7,
		UserEmail: "customer@bookify.test",
		ServiceID: 1,
		Date:      testDate,
		Time:      timeHHMM,
	}
}

func TestAdmitBooking_Success(t *testing.T) {
	_, uc := newAdmitFixture(t)

	b, err := uc.Execute(context.Background(), admitInput("09:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, time.Hour, b.EndTime.Sub(b.StartTime))
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "Premium Consultation", b.Service.Name)
	assert.NotZero(t, b.ID)
}

func TestAdmitBooking_ServiceNotFound(t *testing.T) {
	_, uc := newAdmitFixture(t)

	in := admitInput("09:00")
	in.ServiceID = 99

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}

// A failing database must surface as an infrastructure error, never as a
// service_not_found the client could mistake for a bad id.
func TestAdmitBooking_LookupFailureIsNotServiceNotFound(t *testing.T) {
	repo, _ := newAdmitFixture(t)
	dbDown := errors.New("connection refused")
	uc := NewAdmitBooking(&failingRepo{memRepo: repo, err: dbDown}, nil, nil, nil, nil)

	_, err := uc.Execute(context.Background(), admitInput("09:00"))
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	assert.ErrorIs(t, err, dbDown)
}

func TestAdmitBooking_InvalidDate(t *testing.T) {
	_, uc := newAdmitFixture(t)

	in := admitInput("09:00")
	in.Date = "not-a-date"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
}

func TestAdmitBooking_StartTimeInPast(t *testing.T) {
	repo, _ := newAdmitFixture(t)

	// Clock frozen exactly at the requested start: "at or before now" is
	// rejected, regardless of the windows being otherwise valid.
	now := clock.Fixed(time.Date(2030, 6, 3, 9, 0, 0, 0, time.Local))
	uc := NewAdmitBooking(repo, nil, nil, nil, now)

	_, err := uc.Execute(context.Background(), admitInput("09:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStartTimeInPast))
}

func TestAdmitBooking_NoAvailability(t *testing.T) {
	_, uc := newAdmitFixture(t)

	in := admitInput("09:00")
	in.Date = testTuesday

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoAvailability))
}

func TestAdmitBooking_OutsideAvailability(t *testing.T) {
	_, uc := newAdmitFixture(t)

	// Off the slot grid.
	_, err := uc.Execute(context.Background(), admitInput("09:30"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))

	// On-grid but the interval would run past closing (16:30+60 > 17:00).
	_, err = uc.Execute(context.Background(), admitInput("16:30"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))

	// Before opening.
	_, err = uc.Execute(context.Background(), admitInput("08:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))
}

func TestAdmitBooking_SlotUnavailable(t *testing.T) {
	_, uc := newAdmitFixture(t)

	_, err := uc.Execute(context.Background(), admitInput("10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), admitInput("10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

// Capacity is advisory: admission enforces single occupancy no matter what
// the service declares. Known limitation, preserved on purpose.
func TestAdmitBooking_SingleOccupancyRegardlessOfCapacity(t *testing.T) {
	repo, uc := newAdmitFixture(t)
	repo.services[1].Capacity = 10

	_, err := uc.Execute(context.Background(), admitInput("10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), admitInput("10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestAdmitBooking_ConcurrentSameSlot_ExactlyOneWinner(t *testing.T) {
	repo, uc := newAdmitFixture(t)

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), admitInput("11:00"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable),
				"losers must see slot_unavailable, got %v", err)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, repo.activeBookingCount(1))
}

func TestAdmitBooking_ConcurrentDisjointSlots_AllSucceed(t *testing.T) {
	repo, uc := newAdmitFixture(t)

	times := []string{"09:00", "10:00", "11:00", "12:00"}

	var wg sync.WaitGroup
	errs := make([]error, len(times))

	for i, hhmm := range times {
		wg.Add(1)
		go func(i int, hhmm string) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), admitInput(hhmm))
		}(i, hhmm)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "slot %s", times[i])
	}
	assert.Equal(t, len(times), repo.activeBookingCount(1))
}

func TestAdmitBooking_FreedSlotCanBeRebooked(t *testing.T) {
	repo, uc := newAdmitFixture(t)

	b, err := uc.Execute(context.Background(), admitInput("14:00"))
	require.NoError(t, err)

	cancelUC := NewCancelBooking(repo, nil, nil, nil, uc.now)
	_, err = cancelUC.Execute(context.Background(), CancelBookingInput{
		BookingID: b.ID,
		ActorID:   7,
		ActorRole: "customer",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), admitInput("14:00"))
	assert.NoError(t, err)
}
