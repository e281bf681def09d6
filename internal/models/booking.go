package models

import "time"

// BookingStatus defines lifecycle states for bookings.
type BookingStatus string

const (
	// BookingStatusPending indicates the booking awaits payment.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed indicates payment completed.
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusCancelled indicates the booking was cancelled.
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentState tracks whether a booking has been paid for.
type PaymentState string

const (
	PaymentStateUnpaid PaymentState = "unpaid"
	PaymentStatePaid   PaymentState = "paid"
)

// Booking is a reservation of a stay at a catalog destination.
// Amount is in minor currency units, priced from the destination at
// creation time.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DestinationID   uint          `gorm:"not null;index" json:"destination_id"`
	Destination     *Destination  `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
	StartDate       time.Time     `gorm:"not null" json:"start_date"`
	EndDate         time.Time     `gorm:"not null" json:"end_date"`
	Guests          int           `gorm:"not null" json:"guests"`
	Amount          int64         `gorm:"not null" json:"amount"`
	Currency        string        `gorm:"size:3;not null" json:"currency"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus   PaymentState  `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	StripeSessionID string        `gorm:"size:255;index" json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Nights returns the length of the stay in nights (minimum 1).
func (b *Booking) Nights() int {
	nights := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}
