package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	PriceCents int    `gorm:"not null" json:"price_cents"`
	Currency   string `gorm:"size:3;default:'USD'" json:"currency"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`

	// Capacity is stored and displayed but the admission path enforces
	// single occupancy regardless of its value.
	Capacity int `gorm:"default:1" json:"capacity"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
