package booking

import (
	"time"

	"github.com/bookify/bookify-api/internal/models"
)

// MatchWindow finds the first applicable window that admits the interval
// [start, end): start must lie on the window's slot grid and the whole
// interval must fit between open and close. Returns nil when no window
// matches, which callers surface as outside_availability.
func MatchWindow(
	windows []models.AvailabilityWindow,
	date time.Time,
	start, end time.Time,
	fallbackMinutes int,
) *models.AvailabilityWindow {

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

		offset := start.Sub(open)
		aligned := offset >= 0 && offset%step == 0

		within := !start.Before(open) && !end.After(closeAt)

		if aligned && within {
			return w
		}
	}

	return nil
}
