package models

import (
	"time"
)

// Report flags a listing counterparty for admin review. Transcript holds a
// snapshot of the relevant chat messages when the reporter asked to bundle
// them.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListingID  uint      `gorm:"not null;index" json:"listing_id"`
	Listing    Listing   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	Reporter   User      `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	ReportedID uint      `gorm:"not null;index" json:"reported_id"`
	Reported   User      `gorm:"foreignKey:ReportedID" json:"reported,omitempty"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	Transcript *string   `gorm:"type:text" json:"transcript,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}
