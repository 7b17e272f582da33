package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing statuses. A listing is created ACTIVE and becomes CLOSED when an
// offer is accepted. Expiry is not a status: expired listings stay ACTIVE
// and are filtered out at read time.
const (
	ListingActive = "ACTIVE"
	ListingClosed = "CLOSED"
)

// Listing represents a customer's repair request with a fixed 24h
// bidding/offer window
type Listing struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	CustomerID           uint           `gorm:"not null;index" json:"customer_id"`
	Customer             User           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Title                string         `gorm:"not null" json:"title"`
	Category             string         `gorm:"not null;index" json:"category"`
	Description          string         `gorm:"type:text;not null" json:"description"`
	ImageKeys            StringList     `gorm:"type:text" json:"image_keys"` // exactly 3 storage keys
	Status               string         `gorm:"not null;default:'ACTIVE'" json:"status"`
	ExpiresAt            time.Time      `gorm:"not null;index" json:"expires_at"` // createdAt + 24h, never extended
	AcceptedTechnicianID *uint          `gorm:"index" json:"accepted_technician_id"`
	JobDoneAt            *time.Time     `json:"job_done_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}

// IsOpen reports whether the listing can still receive bids and offers
func (l *Listing) IsOpen(now time.Time) bool {
	return l.Status == ListingActive && l.ExpiresAt.After(now) && l.JobDoneAt == nil
}
