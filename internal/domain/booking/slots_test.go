package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookify/bookify-api/internal/models"
)

// 2030-06-03 is a Monday.
var monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.Local)

// longBefore keeps the past filter out of the way.
var longBefore = monday.AddDate(0, 0, -7)

func intPtr(v int) *int { return &v }

func recurringWindow(serviceID uint, day, durationMinutes int, open, close string) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ServiceID:       serviceID,
		DayOfWeek:       intPtr(day),
		OpenTime:        open,
		CloseTime:       close,
		DurationMinutes: durationMinutes,
	}
}

func dateWindow(serviceID uint, date time.Time, durationMinutes int, open, close string) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ServiceID:       serviceID,
		Date:            &date,
		OpenTime:        open,
		CloseTime:       close,
		DurationMinutes: durationMinutes,
	}
}

func TestSlotsForDate_AdditiveWindows(t *testing.T) {
	// A recurring Monday window and a date-specific window on the same
	// Monday both contribute; neither overrides the other.
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 60, "09:00", "12:00"),
		dateWindow(1, monday, 60, "14:00", "16:00"),
	}

	slots := SlotsForDate(monday, windows, 60, longBefore)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "15:00"}, slots)
}

func TestSlotsForDate_DropsTrailingPartialSlot(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 60, "09:00", "17:30"),
	}

	slots := SlotsForDate(monday, windows, 60, longBefore)

	require.NotEmpty(t, slots)
	assert.Equal(t, "16:00", slots[len(slots)-1])
	assert.Len(t, slots, 8)
}

func TestSlotsForDate_OpenEqualsCloseYieldsNothing(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 60, "09:00", "09:00"),
	}

	assert.Empty(t, SlotsForDate(monday, windows, 60, longBefore))
}

func TestSlotsForDate_PastFilterIsStrict(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 60, "09:00", "12:00"),
	}

	// now == 10:00: the in-progress 10:00 slot is excluded, only strictly
	// later starts survive.
	now := time.Date(2030, 6, 3, 10, 0, 0, 0, time.Local)
	slots := SlotsForDate(monday, windows, 60, now)

	assert.Equal(t, []string{"11:00"}, slots)
}

func TestSlotsForDate_WindowDurationOverridesFallback(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 30, "09:00", "11:00"),
	}

	slots := SlotsForDate(monday, windows, 60, longBefore)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestSlotsForDate_ZeroDurationFallsBackToService(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 0, "09:00", "11:00"),
	}

	slots := SlotsForDate(monday, windows, 60, longBefore)

	assert.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestSlotsForDate_DeduplicatesAndSorts(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 1, 60, "10:00", "12:00"),
		dateWindow(1, monday, 60, "09:00", "12:00"),
	}

	slots := SlotsForDate(monday, windows, 60, longBefore)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)
}

func TestSlotsForDate_IgnoresNonApplicableWindows(t *testing.T) {
	windows := []models.AvailabilityWindow{
		recurringWindow(1, 2, 60, "09:00", "12:00"), // Tuesday
		dateWindow(1, monday.AddDate(0, 0, 7), 60, "09:00", "12:00"),
	}

	assert.Empty(t, SlotsForDate(monday, windows, 60, longBefore))
}
