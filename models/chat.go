package models

import (
	"time"
)

// ChatThread is a messaging channel scoped to one (listing, technician)
// pair. Participants are the listing's customer and that technician;
// admins may access any thread. UpdatedAt is bumped on every message so
// the inbox orders by latest activity.
type ChatThread struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListingID    uint      `gorm:"not null;uniqueIndex:idx_threads_listing_technician" json:"listing_id"`
	Listing      Listing   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`
	Customer     User      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TechnicianID uint      `gorm:"not null;uniqueIndex:idx_threads_listing_technician" json:"technician_id"`
	Technician   User      `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ChatThread model
func (ChatThread) TableName() string {
	return "chat_threads"
}

// IsParticipant reports whether the given user may address this thread.
// Evaluated fresh on every call; never cached.
func (t *ChatThread) IsParticipant(userID uint, role string) bool {
	return t.CustomerID == userID || t.TechnicianID == userID || role == RoleAdmin
}

// Message is a single chat message inside a thread
type Message struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ThreadID  uint       `gorm:"not null;index" json:"thread_id"`
	Thread    ChatThread `gorm:"foreignKey:ThreadID" json:"-"`
	SenderID  uint       `gorm:"not null;index" json:"sender_id"`
	Sender    User       `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
