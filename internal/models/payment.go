package models

import "time"

// Payment records a completed gateway payment applied to a booking.
// StripeEventID carries a unique index: replaying the same webhook event
// cannot double-apply.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BookingID       uint      `gorm:"not null;index" json:"booking_id"`
	Booking         *Booking  `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	StripeSessionID string    `gorm:"size:255;not null" json:"stripe_session_id"`
	StripeEventID   string    `gorm:"size:255;not null;uniqueIndex" json:"stripe_event_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"size:3;not null" json:"currency"`
	Status          string    `gorm:"size:40;not null" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
