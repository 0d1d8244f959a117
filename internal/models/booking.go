package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the external identifier used in events, notifications
	// and checkout, so internal ids never leak outside the API.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ServiceID uint    `gorm:"index;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Half-open interval [StartTime, EndTime).
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
