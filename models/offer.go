package models

import (
	"time"
)

// Offer statuses. At most one offer per listing ever holds ACCEPTED;
// accepting one rejects every other SENT offer on the listing.
const (
	OfferSent     = "SENT"
	OfferAccepted = "ACCEPTED"
	OfferRejected = "REJECTED"
)

// Offer is a technician's structured service proposal against a listing.
// A technician may hold at most 3 offers on the same listing, counted
// regardless of status.
type Offer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListingID    uint      `gorm:"not null;index" json:"listing_id"`
	Listing      Listing   `gorm:"foreignKey:ListingID" json:"-"`
	TechnicianID uint      `gorm:"not null;index" json:"technician_id"`
	Technician   User      `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	RepairType   string    `gorm:"not null" json:"repair_type"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Location     string    `gorm:"not null" json:"location"`
	Status       string    `gorm:"not null;default:'SENT'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
