package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// CreateReview handles POST /listings/:id/review - the listing owner
// leaves the single post-completion review. The technician is derived
// from the accepted offer, never supplied by the caller. The review
// insert and the rating-average update commit in one transaction.
func CreateReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	if listing.CustomerID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Not your listing")
		return
	}
	if listing.JobDoneAt == nil {
		respondError(c, http.StatusBadRequest, "JOB_NOT_DONE", "Job not marked done yet")
		return
	}

	var existingCount int64
	if err := db.Model(&models.Review{}).
		Where("listing_id = ?", listing.ID).
		Count(&existingCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check reviews")
		return
	}
	if existingCount > 0 {
		respondError(c, http.StatusConflict, "REVIEW_EXISTS", "Review already exists")
		return
	}

	// The accepted offer names the technician being reviewed. A done
	// listing without one is inconsistent state.
	var accepted models.Offer
	err := db.Preload("Technician").
		Where("listing_id = ? AND status = ?", listing.ID, models.OfferAccepted).
		First(&accepted).Error
	if err != nil {
		respondError(c, http.StatusBadRequest, "NO_ACCEPTED_OFFER", "No accepted offer found for this listing")
		return
	}

	review := models.Review{
		ListingID:    listing.ID,
		CustomerID:   user.ID,
		TechnicianID: accepted.TechnicianID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var profile models.TechnicianProfile
		if err := tx.Where("user_id = ?", accepted.TechnicianID).First(&profile).Error; err != nil {
			return err
		}

		newCount := profile.RatingCount + 1
		newAvg := (profile.RatingAvg*float64(profile.RatingCount) + float64(req.Rating)) / float64(newCount)

		return tx.Model(&profile).Updates(map[string]interface{}{
			"rating_avg":   newAvg,
			"rating_count": newCount,
		}).Error
	})
	if err != nil {
		// The unique index backstops the existence check under races
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "REVIEW_EXISTS", "Review already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create review")
		return
	}

	services.GetNotifier().Notify(services.EventReviewCreated, map[string]interface{}{
		"listingId":    listing.ID,
		"toEmail":      accepted.Technician.Email,
		"technicianId": accepted.TechnicianID,
		"rating":       req.Rating,
	})

	respondData(c, http.StatusCreated, review)
}

// GetReview handles GET /listings/:id/review - the listing owner or an
// admin fetches the review, which may not exist yet
func GetReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	role, _ := middleware.GetUserRole(c)
	isOwner := role == models.RoleCustomer && listing.CustomerID == user.ID
	if !isOwner && role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to view this review")
		return
	}

	var review models.Review
	err := db.Where("listing_id = ?", listing.ID).First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondData(c, http.StatusOK, nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch review")
		return
	}

	respondData(c, http.StatusOK, review)
}

// MyReviews handles GET /technician/my-reviews - the caller's rating
// summary and received reviews, newest first
func MyReviews(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var profile models.TechnicianProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Technician profile not found")
		return
	}

	var reviews []models.Review
	if err := db.Where("technician_id = ?", user.ID).
		Order("created_at DESC").
		Preload("Listing").
		Find(&reviews).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch reviews")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"profile": gin.H{
			"rating_avg":   profile.RatingAvg,
			"rating_count": profile.RatingCount,
		},
		"reviews": reviews,
	})
}
