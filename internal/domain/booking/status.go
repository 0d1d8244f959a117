package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	// StatusPending exists in the data model but the admission path goes
	// straight to confirmed; nothing transitions through pending today.
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is the status every admitted booking is created with.
func InitialStatus() Status {
	return StatusConfirmed
}

// Blocks reports whether a booking in the given status occupies its
// interval for conflict purposes. Cancelled bookings free their slot.
func Blocks(s Status) bool {
	return s != StatusCancelled
}
