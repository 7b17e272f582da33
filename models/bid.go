package models

import (
	"time"
)

// Bid is a technician's price proposal against a listing. There is at most
// one bid per (listing, technician); resubmitting replaces price and note.
type Bid struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListingID    uint      `gorm:"not null;uniqueIndex:idx_bids_listing_technician" json:"listing_id"`
	Listing      Listing   `gorm:"foreignKey:ListingID" json:"-"`
	TechnicianID uint      `gorm:"not null;uniqueIndex:idx_bids_listing_technician" json:"technician_id"`
	Technician   User      `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	PriceCents   int       `gorm:"not null;check:price_cents > 0" json:"price_cents"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}
