package models

import "time"

// Destination is an entry in the restricted-area catalog. Permit
// applications are only accepted for active destinations, and bookings
// price their stay from PricePerNight.
type Destination struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Slug           string    `gorm:"size:60;not null;uniqueIndex" json:"slug"`
	Region         string    `gorm:"size:120" json:"region"`
	Description    string    `gorm:"type:text" json:"description"`
	PermitRequired bool      `gorm:"not null;default:true" json:"permit_required"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	PricePerNight  int64     `gorm:"not null;default:0" json:"price_per_night"`
	Currency       string    `gorm:"size:3;not null;default:'INR'" json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
