package models

import "time"

// AvailabilityWindow is a configured open/close range during which a service
// may be booked. Exactly one of DayOfWeek (0=Sunday..6=Saturday, recurring)
// or Date (one-off) is set.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"index;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek *int       `json:"day_of_week"`
	Date      *time.Time `json:"date"`

	OpenTime  string `gorm:"size:5;not null" json:"open_time"`
	CloseTime string `gorm:"size:5;not null" json:"close_time"`

	// DurationMinutes overrides the service's default slot grid when > 0.
	DurationMinutes int `json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
