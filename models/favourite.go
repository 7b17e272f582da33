package models

import (
	"time"
)

// Favourite bookmarks a listing for a technician. The composite unique
// index gives the toggle its idempotency under concurrent double-submits.
type Favourite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TechnicianID uint      `gorm:"not null;uniqueIndex:idx_favourites_technician_listing" json:"technician_id"`
	Technician   User      `gorm:"foreignKey:TechnicianID" json:"-"`
	ListingID    uint      `gorm:"not null;uniqueIndex:idx_favourites_technician_listing" json:"listing_id"`
	Listing      Listing   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the Favourite model
func (Favourite) TableName() string {
	return "favourites"
}
