package models

import (
	"time"
)

// Review is the single post-completion rating a customer leaves on a
// listing. The unique index on ListingID enforces at most one review per
// listing; the technician is always derived from the accepted offer.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListingID    uint      `gorm:"not null;uniqueIndex" json:"listing_id"`
	Listing      Listing   `gorm:"foreignKey:ListingID" json:"-"`
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`
	TechnicianID uint      `gorm:"not null;index" json:"technician_id"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
