package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListWindowsForDate(
	ctx context.Context,
	serviceID uint,
	date time.Time,
) ([]models.AvailabilityWindow, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nextDay := dayStart.Add(24 * time.Hour)
	weekday := int(date.Weekday())

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where(
			"service_id = ? AND (day_of_week = ? OR (date >= ? AND date < ?))",
			serviceID, weekday, dayStart, nextDay,
		).
		Order("created_at ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

// --------------------------------------------------
// Booking (admission)
// --------------------------------------------------

// AdmitBooking runs the conflict check and the insert in one transaction,
// holding a FOR UPDATE lock on the service row. The lock serializes
// admissions per service, so two requests racing for overlapping intervals
// cannot both pass the conflict check; everything else proceeds in parallel.
func (r *BookingGormRepository) AdmitBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var svc models.Service
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, b.ServiceID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"service_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				b.ServiceID,
				string(domain.StatusCancelled),
				b.EndTime,
				b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change / read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		First(&b, id).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListAllBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) HasBookingsForService(
	ctx context.Context,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
