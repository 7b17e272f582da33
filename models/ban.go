package models

import (
	"time"
)

// Ban blocks signup and login by email and/or phone, independently. A ban
// overrides an otherwise-valid credential match.
type Ban struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     *string   `gorm:"index" json:"email,omitempty"`
	Phone     *string   `gorm:"index" json:"phone,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Ban model
func (Ban) TableName() string {
	return "bans"
}
