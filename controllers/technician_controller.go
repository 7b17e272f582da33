package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/models"
)

// TechnicianJobs handles GET /technician/jobs?type=current|history - the
// caller's accepted work, split on whether the job has been completed
func TechnicianJobs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobType := c.DefaultQuery("type", "current")

	db := config.GetDB()
	query := db.Where("offers.technician_id = ? AND offers.status = ?", user.ID, models.OfferAccepted).
		Joins("JOIN listings ON listings.id = offers.listing_id")

	if jobType == "history" {
		query = query.Where("listings.job_done_at IS NOT NULL")
	} else {
		query = query.Where("listings.job_done_at IS NULL")
	}

	var offers []models.Offer
	if err := query.Order("offers.created_at DESC").
		Preload("Listing.Customer").
		Find(&offers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch jobs")
		return
	}

	jobs := make([]gin.H, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		jobs = append(jobs, gin.H{
			"id":          o.ID,
			"repair_type": o.RepairType,
			"description": o.Description,
			"location":    o.Location,
			"created_at":  o.CreatedAt,
			"listing": gin.H{
				"id":             o.Listing.ID,
				"title":          o.Listing.Title,
				"category":       o.Listing.Category,
				"status":         o.Listing.Status,
				"created_at":     o.Listing.CreatedAt,
				"expires_at":     o.Listing.ExpiresAt,
				"job_done_at":    o.Listing.JobDoneAt,
				"customer_email": o.Listing.Customer.Email,
			},
		})
	}

	respondData(c, http.StatusOK, jobs)
}
