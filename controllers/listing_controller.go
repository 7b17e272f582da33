package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
	"github.com/agnivapalit/fixfinder/utils"
)

// ListingWindow is the fixed bidding/offer window. It is set at creation
// and never extended.
const ListingWindow = 24 * time.Hour

// MinDescriptionWords is the minimum word count for a listing description
const MinDescriptionWords = 50

// CreateListingRequest represents the request body for creating a listing
type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=80"`
	Category    string   `json:"category" binding:"required,min=2,max=40"`
	Description string   `json:"description" binding:"required"`
	ImageKeys   []string `json:"image_keys" binding:"required,len=3,dive,min=1"`
}

// CreateListing handles POST /listings - creates a listing (customers only)
func CreateListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if utils.CountWords(req.Description) < MinDescriptionWords {
		respondError(c, http.StatusBadRequest, "DESCRIPTION_TOO_SHORT", "Description must be at least 50 words")
		return
	}

	listing := models.Listing{
		CustomerID:  user.ID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		ImageKeys:   models.StringList(req.ImageKeys),
		Status:      models.ListingActive,
		ExpiresAt:   time.Now().Add(ListingWindow),
	}

	db := config.GetDB()
	if err := db.Create(&listing).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create listing")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"id":         listing.ID,
		"title":      listing.Title,
		"category":   listing.Category,
		"status":     listing.Status,
		"created_at": listing.CreatedAt,
		"expires_at": listing.ExpiresAt,
	})
}

// ListListings handles GET /listings - browses active, non-expired
// listings with an optional category filter. Expired rows stay ACTIVE in
// storage and are filtered here at read time.
func ListListings(c *gin.Context) {
	db := config.GetDB()

	query := db.Where("status = ? AND expires_at > ?", models.ListingActive, time.Now())
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch listings")
		return
	}

	respondData(c, http.StatusOK, listings)
}

// MyListings handles GET /listings/mine - the caller's own listings, any status
func MyListings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var listings []models.Listing
	if err := db.Where("customer_id = ?", user.ID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch listings")
		return
	}

	respondData(c, http.StatusOK, listings)
}

// GetListing handles GET /listings/:id - full listing detail
func GetListing(c *gin.Context) {
	db := config.GetDB()

	var listing models.Listing
	if err := db.Preload("Customer").First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	respondData(c, http.StatusOK, listing)
}

// MarkJobDone handles POST /listings/:id/done - the accepted technician
// (or an admin) marks the job complete. Fails if already marked.
func MarkJobDone(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.Preload("Customer").First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	if listing.JobDoneAt != nil {
		respondError(c, http.StatusBadRequest, "ALREADY_DONE", "Already marked done")
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role == models.RoleTechnician {
		var accepted models.Offer
		err := db.Where("listing_id = ? AND status = ? AND technician_id = ?",
			listing.ID, models.OfferAccepted, user.ID).
			First(&accepted).Error
		if err != nil {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "No accepted offer for you on this listing")
			return
		}
	}

	now := time.Now()
	if err := db.Model(&listing).Update("job_done_at", now).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update listing")
		return
	}

	services.GetNotifier().Notify(services.EventJobDone, map[string]interface{}{
		"listingId":  listing.ID,
		"toEmail":    listing.Customer.Email,
		"customerId": listing.CustomerID,
	})

	respondData(c, http.StatusOK, gin.H{"ok": true, "job_done_at": now})
}
