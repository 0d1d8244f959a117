package httperr

import "errors"

// Business error codes surfaced to callers. Anything else that escapes a
// use case is infrastructure failure and maps to an opaque 500.
const (
	CodeServiceNotFound     = "service_not_found"
	CodeBookingNotFound     = "booking_not_found"
	CodeStartTimeInPast     = "start_time_in_past"
	CodeNoAvailability      = "no_availability"
	CodeOutsideAvailability = "outside_availability"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeForbidden           = "forbidden"
	CodeServiceHasBookings  = "service_has_bookings"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeInvalidWindow       = "invalid_window"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a business error, or "" for
// infrastructure errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
