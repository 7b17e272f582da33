package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email           string   `json:"email" binding:"required,email"`
	Phone           *string  `json:"phone" binding:"omitempty,min=6"`
	Password        string   `json:"password" binding:"required,min=8"`
	Role            string   `json:"role" binding:"omitempty,oneof=CUSTOMER TECHNICIAN"`
	Workplace       string   `json:"workplace" binding:"omitempty,oneof=IN_SHOP FLEXIBLE"`
	ExperienceYears int      `json:"experience_years" binding:"omitempty,gte=0"`
	Certifications  []string `json:"certifications"`
	Experiences     []string `json:"experiences"`
	Categories      []string `json:"categories" binding:"omitempty,dive,max=30"`
}

// findBan returns the first ban matching the email or, if present, the phone
func findBan(db *gorm.DB, email string, phone *string) (*models.Ban, error) {
	query := db.Where("email = ?", email)
	if phone != nil && *phone != "" {
		query = db.Where("email = ?", email).Or("phone = ?", *phone)
	}

	var ban models.Ban
	err := query.First(&ban).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// Signup handles POST /auth/signup - creates an account, with an
// unapproved technician profile when the TECHNICIAN role is requested
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	email := strings.ToLower(req.Email)
	db := config.GetDB()

	// Banned email or phone blocks registration outright
	ban, err := findBan(db, email, req.Phone)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check ban list")
		return
	}
	if ban != nil {
		respondError(c, http.StatusForbidden, "REGISTRATION_BLOCKED", "Registration blocked")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to process password")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	if role == models.RoleTechnician {
		workplace := req.Workplace
		if workplace == "" {
			workplace = models.WorkplaceInShop
		}
		user.TechnicianProfile = &models.TechnicianProfile{
			Workplace:       workplace,
			ExperienceYears: req.ExperienceYears,
			Certifications:  models.StringList(req.Certifications),
			Experiences:     models.StringList(req.Experiences),
			Categories:      models.StringList(req.Categories),
		}
	}

	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "USER_EXISTS", "Email/phone already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login - verifies credentials and issues a
// 7-day bearer token carrying the user's id and role
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var user models.User
	err := db.Preload("TechnicianProfile").
		Where("email = ?", strings.ToLower(req.Email)).
		First(&user).Error
	if err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}

	if user.IsBanned {
		respondError(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account banned")
		return
	}

	// Unapproved technicians get a distinct error from bad credentials.
	// Deliberate product tradeoff: the pending state is disclosed.
	if user.Role == models.RoleTechnician &&
		(user.TechnicianProfile == nil || !user.TechnicianProfile.Approved) {
		respondError(c, http.StatusForbidden, "TECHNICIAN_PENDING", "Technician pending admin approval")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}

	// Ban list overrides an otherwise-valid credential match
	ban, err := findBan(db, user.Email, user.Phone)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check ban list")
		return
	}
	if ban != nil {
		respondError(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account banned")
		return
	}

	cfg := config.GetConfig()
	token, err := services.IssueToken(cfg.JWTSecret, user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// VerifyRequest represents the request body for the mock verification endpoints
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// MockVerifyEmail handles POST /auth/mock-verify-email - marks an email
// verified without sending anything. Stands in for a real verification
// flow during development.
func MockVerifyEmail(c *gin.Context) {
	verifyFlag(c, "email_verified")
}

// MockVerifyPhone handles POST /auth/mock-verify-phone
func MockVerifyPhone(c *gin.Context) {
	verifyFlag(c, "phone_verified")
}

func verifyFlag(c *gin.Context, column string) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	result := db.Model(&models.User{}).
		Where("email = ?", strings.ToLower(req.Email)).
		Update(column, true)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User account not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}

// Me handles GET /me - returns the caller's account and profile summary
func Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := db.Preload("TechnicianProfile").First(user, user.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load profile")
		return
	}

	respondData(c, http.StatusOK, user)
}
