package booking

import (
	"sort"
	"time"

	"github.com/bookify/bookify-api/internal/models"
)

// CombineDateAndTime resolves an "HH:MM" wall-clock label onto the
// calendar day of date, in date's location.
func CombineDateAndTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// EffectiveDuration is the slot grid size of a window: its own override
// when set, the service default otherwise.
func EffectiveDuration(w *models.AvailabilityWindow, fallbackMinutes int) time.Duration {
	minutes := w.DurationMinutes
	if minutes <= 0 {
		minutes = fallbackMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// AppliesTo reports whether a window contributes slots on the given
// calendar date. Date-specific and recurring day-of-week windows are
// additive: both kinds may apply to the same date.
func AppliesTo(w *models.AvailabilityWindow, date time.Time) bool {
	if w.Date != nil {
		y1, m1, d1 := w.Date.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if w.DayOfWeek != nil {
		return *w.DayOfWeek == int(date.Weekday())
	}
	return false
}

// SlotsForDate produces the ordered, deduplicated "HH:MM" start labels of
// every bookable slot on date across the applicable windows. Slots whose
// start is not strictly later than now are dropped; a trailing step that
// would run past a window's close is dropped too. The function is pure and
// safe to recompute on every request.
func SlotsForDate(
	date time.Time,
	windows []models.AvailabilityWindow,
	fallbackMinutes int,
	now time.Time,
) []string {

	seen := make(map[string]struct{})

	for i := range windows {
		w := &windows[i]
		if !AppliesTo(w, date) {
			continue
		}

		open, err := CombineDateAndTime(date, w.OpenTime)
		if err != nil {
			continue
		}
		closeAt, err := CombineDateAndTime(date, w.CloseTime)
		if err != nil {
			continue
		}

		step := EffectiveDuration(w, fallbackMinutes)
		if step <= 0 {
			continue
		}

		for cur := open; !cur.Add(step).After(closeAt); cur = cur.Add(step) {
			if cur.After(now) {
				seen[cur.Format("15:04")] = struct{}{}
			}
		}
	}

	slots := make([]string, 0, len(seen))
	for label := range seen {
		slots = append(slots, label)
	}
	sort.Strings(slots)
	return slots
}
