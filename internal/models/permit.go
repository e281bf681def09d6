package models

import "time"

// PermitStatus defines lifecycle states for permit applications.
type PermitStatus string

const (
	// PermitStatusPending indicates the application is awaiting review.
	PermitStatusPending PermitStatus = "Pending"
	// PermitStatusApproved indicates the application was accepted.
	PermitStatusApproved PermitStatus = "Approved"
	// PermitStatusRejected indicates the application was denied.
	PermitStatusRejected PermitStatus = "Rejected"
)

// permitTransitions is the allowed-transition table. Approved and Rejected
// are terminal: a decided permit can never be re-reviewed.
var permitTransitions = map[PermitStatus][]PermitStatus{
	PermitStatusPending:  {PermitStatusApproved, PermitStatusRejected},
	PermitStatusApproved: {},
	PermitStatusRejected: {},
}

// CanTransition reports whether a permit may move from one status to another.
func CanTransition(from, to PermitStatus) bool {
	for _, allowed := range permitTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status PermitStatus) bool {
	return len(permitTransitions[status]) == 0
}

// ParsePermitDecision maps a review target string onto one of the two legal
// decision statuses. Anything else (including "Pending" and "Cancelled")
// is rejected.
func ParsePermitDecision(raw string) (PermitStatus, bool) {
	switch PermitStatus(raw) {
	case PermitStatusApproved:
		return PermitStatusApproved, true
	case PermitStatusRejected:
		return PermitStatusRejected, true
	}
	return "", false
}

// PermitApplication is a tourist's request to visit a restricted destination.
// Version is an optimistic-concurrency counter: reviews are applied with a
// conditional update so that concurrent reviewers fail loudly instead of
// silently overwriting each other.
type PermitApplication struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	TouristID     uint         `gorm:"not null;index" json:"tourist_id"`
	Tourist       *User        `gorm:"foreignKey:TouristID" json:"tourist,omitempty"`
	Destination   string       `gorm:"size:120;not null" json:"destination"`
	StartDate     time.Time    `gorm:"not null" json:"start_date"`
	EndDate       time.Time    `gorm:"not null" json:"end_date"`
	Reason        string       `gorm:"type:text;not null" json:"reason"`
	DocumentURL   string       `gorm:"size:2048;not null" json:"document_url"`
	Status        PermitStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ReviewedByID  *uint        `json:"reviewed_by_id"`
	ReviewedBy    *User        `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewerNotes string       `gorm:"type:text" json:"reviewer_notes"`
	ReviewedAt    *time.Time   `json:"reviewed_at"`
	Version       int          `gorm:"not null;default:0" json:"version"`
	CreatedAt     time.Time    `json:"submitted_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
