package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/httpresp"
	"github.com/bookify/bookify-api/internal/middleware"
	"github.com/bookify/bookify-api/internal/payments"
	ucBooking "github.com/bookify/bookify-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	admitUC  *ucBooking.AdmitBooking
	cancelUC *ucBooking.CancelBooking
	listUC   *ucBooking.ListBookings
	slotsUC  *ucBooking.GetSlots

	repo     domain.Repository
	checkout payments.Provider
}

func NewBookingHandler(
	admitUC *ucBooking.AdmitBooking,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookings,
	slotsUC *ucBooking.GetSlots,
	repo domain.Repository,
	checkout payments.Provider,
) *BookingHandler {
	return &BookingHandler{
		admitUC:  admitUC,
		cancelUC: cancelUC,
		listUC:   listUC,
		slotsUC:  slotsUC,
		repo:     repo,
		checkout: checkout,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBookingError maps the admission/cancellation error taxonomy onto
// HTTP. Anything without a business code is infrastructure failure: logged
// with context, surfaced opaquely.
func writeBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case httperr.CodeServiceNotFound:
		httperr.NotFound(c, code, "Service not found.")
	case httperr.CodeBookingNotFound:
		httperr.NotFound(c, code, "Booking not found.")
	case httperr.CodeStartTimeInPast:
		httperr.BadRequest(c, code, "Start time must be in the future.")
	case httperr.CodeNoAvailability:
		httperr.BadRequest(c, code, "No availability for the selected date.")
	case httperr.CodeOutsideAvailability:
		httperr.BadRequest(c, code, "Requested time is outside availability.")
	case httperr.CodeInvalidDateOrTime:
		httperr.BadRequest(c, code, "Invalid date or time.")
	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, code, "Slot already booked.")
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, "You may not modify this booking.")
	default:
		log.Println("booking error:", err)
		httperr.Internal(c, "internal_error", "Internal server error.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	email := c.MustGet(middleware.ContextUserEmail).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.admitUC.Execute(c.Request.Context(), ucBooking.AdmitBookingInput{
		UserID:    userID,
		UserEmail: email,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	bookings, err := h.listUC.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	b, err := h.cancelUC.Execute(c.Request.Context(), ucBooking.CancelBookingInput{
		BookingID: uint(id),
		ActorID:   userID,
		ActorRole: role,
		Reason:    req.Reason,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// SLOTS
// ======================================================

func (h *BookingHandler) Slots(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), ucBooking.GetSlotsInput{
		ServiceID: uint(serviceID),
		Date:      dateStr,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CHECKOUT
// ======================================================

// Checkout creates a payment session for an existing booking. It sits
// outside the admission path: a failed or absent payment provider never
// affects the booking itself.
func (h *BookingHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if h.checkout == nil {
		httperr.Write(c, 503, "payments_disabled", "Payments are not configured.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.repo.GetBookingByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeBookingNotFound, "Booking not found.")
		} else {
			writeBookingError(c, err)
		}
		return
	}

	if !domain.CanActOn(b, userID, role) {
		httperr.Forbidden(c, httperr.CodeForbidden, "You may not pay for this booking.")
		return
	}

	checkout, err := h.checkout.CreateCheckout(c.Request.Context(), b, &b.Service)
	if err != nil {
		log.Println("checkout error:", err)
		httperr.Internal(c, "checkout_failed", "Could not create checkout.")
		return
	}

	httpresp.OK(c, checkout)
}
