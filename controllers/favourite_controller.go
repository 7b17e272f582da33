package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/models"
)

// ListFavourites handles GET /favourites - the technician's bookmarked
// listings, newest first
func ListFavourites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var favourites []models.Favourite
	if err := db.Where("technician_id = ?", user.ID).
		Order("created_at DESC").
		Preload("Listing").
		Find(&favourites).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch favourites")
		return
	}

	respondData(c, http.StatusOK, favourites)
}

// ToggleFavourite handles POST /favourites/toggle/:id - bookmarks the
// listing, or removes the bookmark if it exists. The composite unique key
// keeps concurrent double-toggles from duplicating rows.
func ToggleFavourite(c *gin.Context) {
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

	var existing models.Favourite
	err := db.Where("technician_id = ? AND listing_id = ?", user.ID, listing.ID).
		First(&existing).Error
	if err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove favourite")
			return
		}
		respondData(c, http.StatusOK, gin.H{"favourited": false})
		return
	}
	if err != gorm.ErrRecordNotFound {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check favourites")
		return
	}

	favourite := models.Favourite{
		TechnicianID: user.ID,
		ListingID:    listing.ID,
	}
	if err := db.Create(&favourite).Error; err != nil {
		if isUniqueViolation(err) {
			// concurrent toggle already created it
			respondData(c, http.StatusOK, gin.H{"favourited": true})
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add favourite")
		return
	}

	respondData(c, http.StatusOK, gin.H{"favourited": true})
}
