package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. The set is fixed and closed.
const (
	RoleCustomer   = "CUSTOMER"
	RoleTechnician = "TECHNICIAN"
	RoleAdmin      = "ADMIN"
)

// User represents an account in the system (customer, technician or admin)
type User struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	Email             string             `gorm:"uniqueIndex;not null" json:"email"`
	Phone             *string            `gorm:"index" json:"phone,omitempty"`
	PasswordHash      string             `gorm:"not null" json:"-"`
	Role              string             `gorm:"not null;default:'CUSTOMER'" json:"role"`
	IsBanned          bool               `gorm:"not null;default:false" json:"is_banned"`
	EmailVerified     bool               `gorm:"not null;default:false" json:"email_verified"`
	PhoneVerified     bool               `gorm:"not null;default:false" json:"phone_verified"`
	TechnicianProfile *TechnicianProfile `gorm:"foreignKey:UserID" json:"technician_profile,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Workplace preferences for technicians
const (
	WorkplaceInShop   = "IN_SHOP"
	WorkplaceFlexible = "FLEXIBLE"
)

// TechnicianProfile holds the marketplace profile attached to a user with
// the TECHNICIAN role. A technician cannot log in until an admin flips
// Approved to true.
type TechnicianProfile struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Approved        bool       `gorm:"not null;default:false" json:"approved"`
	RatingAvg       float64    `gorm:"not null;default:0" json:"rating_avg"`
	RatingCount     int        `gorm:"not null;default:0" json:"rating_count"`
	Workplace       string     `gorm:"not null;default:'IN_SHOP'" json:"workplace"`
	ExperienceYears int        `gorm:"not null;default:0" json:"experience_years"`
	Certifications  StringList `gorm:"type:text" json:"certifications"`
	Experiences     StringList `gorm:"type:text" json:"experiences"`
	Categories      StringList `gorm:"type:text" json:"categories"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the TechnicianProfile model
func (TechnicianProfile) TableName() string {
	return "technician_profiles"
}
