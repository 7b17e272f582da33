package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/models"
)

// PendingTechnicians handles GET /admin/technicians/pending - profiles
// awaiting approval
func PendingTechnicians(c *gin.Context) {
	db := config.GetDB()

	var profiles []models.TechnicianProfile
	if err := db.Where("approved = ?", false).Find(&profiles).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch profiles")
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		var u models.User
		if err := db.First(&u, p.UserID).Error; err != nil {
			continue
		}
		out = append(out, gin.H{
			"profile": p,
			"user":    gin.H{"id": u.ID, "email": u.Email},
		})
	}

	respondData(c, http.StatusOK, out)
}

// ApproveTechnician handles POST /admin/technicians/:id/approve
func ApproveTechnician(c *gin.Context) {
	db := config.GetDB()

	result := db.Model(&models.TechnicianProfile{}).
		Where("user_id = ?", c.Param("id")).
		Update("approved", true)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to approve technician")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Technician profile not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}

// RejectTechnician handles POST /admin/technicians/:id/reject - removes
// the profile and the account
func RejectTechnician(c *gin.Context) {
	db := config.GetDB()
	userID := c.Param("id")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.TechnicianProfile{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", userID).Delete(&models.User{}).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reject technician")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}

// AdminListings handles GET /admin/listings - every listing, any state
func AdminListings(c *gin.Context) {
	db := config.GetDB()

	var listings []models.Listing
	if err := db.Order("created_at DESC").Find(&listings).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch listings")
		return
	}

	respondData(c, http.StatusOK, listings)
}

// AdminBids handles GET /admin/bids - platform-wide bids with listing and
// technician context
func AdminBids(c *gin.Context) {
	db := config.GetDB()

	var bids []models.Bid
	if err := db.Order("created_at DESC").
		Preload("Listing").
		Preload("Technician.TechnicianProfile").
		Find(&bids).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch bids")
		return
	}

	respondData(c, http.StatusOK, bids)
}

// RemoveRequest carries the id for admin removal endpoints
type RemoveRequest struct {
	ID uint `json:"id" binding:"required"`
}

// RemoveBid handles POST /admin/bids/remove
func RemoveBid(c *gin.Context) {
	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Bid{}, req.ID)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove bid")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "BID_NOT_FOUND", "Bid not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}

// AdminOffers handles GET /admin/offers
func AdminOffers(c *gin.Context) {
	db := config.GetDB()

	var offers []models.Offer
	if err := db.Order("created_at DESC").
		Preload("Listing").
		Preload("Technician").
		Find(&offers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch offers")
		return
	}

	respondData(c, http.StatusOK, offers)
}

// AdminReports handles GET /admin/reports
func AdminReports(c *gin.Context) {
	db := config.GetDB()

	var reports []models.Report
	if err := db.Order("created_at DESC").
		Preload("Listing").
		Preload("Reporter").
		Preload("Reported").
		Find(&reports).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch reports")
		return
	}

	respondData(c, http.StatusOK, reports)
}

// BanRequest represents the request body for banning by email and/or phone
type BanRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone" binding:"omitempty,min=6"`
	Reason *string `json:"reason"`
}

// CreateBan handles POST /admin/ban - adds a ban entry and flags any
// matching account
func CreateBan(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.Email == nil && req.Phone == nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email or phone is required")
		return
	}

	db := config.GetDB()
	ban := models.Ban{Email: req.Email, Phone: req.Phone, Reason: req.Reason}
	if err := db.Create(&ban).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create ban")
		return
	}

	// Flag existing accounts so active sessions lose access at the next
	// credentialed action
	query := db.Model(&models.User{})
	switch {
	case req.Email != nil && req.Phone != nil:
		query = query.Where("email = ? OR phone = ?", *req.Email, *req.Phone)
	case req.Email != nil:
		query = query.Where("email = ?", *req.Email)
	default:
		query = query.Where("phone = ?", *req.Phone)
	}
	if err := query.Update("is_banned", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to flag banned accounts")
		return
	}

	respondData(c, http.StatusCreated, ban)
}

// ListBans handles GET /admin/bans
func ListBans(c *gin.Context) {
	db := config.GetDB()

	var bans []models.Ban
	if err := db.Order("created_at DESC").Find(&bans).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch bans")
		return
	}

	respondData(c, http.StatusOK, bans)
}

// RemoveBan handles POST /admin/bans/remove - lifts a ban and unflags
// accounts that no other ban still covers
func RemoveBan(c *gin.Context) {
	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var ban models.Ban
	if err := db.First(&ban, req.ID).Error; err != nil {
		respondError(c, http.StatusNotFound, "BAN_NOT_FOUND", "Ban not found")
		return
	}

	if err := db.Delete(&ban).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove ban")
		return
	}

	query := db.Model(&models.User{})
	switch {
	case ban.Email != nil && ban.Phone != nil:
		query = query.Where("email = ? OR phone = ?", *ban.Email, *ban.Phone)
	case ban.Email != nil:
		query = query.Where("email = ?", *ban.Email)
	case ban.Phone != nil:
		query = query.Where("phone = ?", *ban.Phone)
	default:
		respondData(c, http.StatusOK, gin.H{"ok": true})
		return
	}
	if err := query.Update("is_banned", false).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unflag accounts")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}

// AdminStats handles GET /admin/stats - platform counters
func AdminStats(c *gin.Context) {
	db := config.GetDB()

	var userCount, technicianCount, listingCount, bidCount, offerCount int64
	counts := []struct {
		model interface{}
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&models.User{}, &userCount, nil},
		{&models.TechnicianProfile{}, &technicianCount, func(q *gorm.DB) *gorm.DB { return q.Where("approved = ?", true) }},
		{&models.Listing{}, &listingCount, nil},
		{&models.Bid{}, &bidCount, nil},
		{&models.Offer{}, &offerCount, nil},
	}
	for _, cnt := range counts {
		q := db.Model(cnt.model)
		if cnt.scope != nil {
			q = cnt.scope(q)
		}
		if err := q.Count(cnt.dest).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute stats")
			return
		}
	}

	respondData(c, http.StatusOK, gin.H{
		"user_count":       userCount,
		"technician_count": technicianCount,
		"listing_count":    listingCount,
		"bid_count":        bidCount,
		"offer_count":      offerCount,
	})
}

// DeleteListing handles DELETE /admin/listings/:id - removes the listing
// and every dependent row in one transaction. A failure anywhere rolls the
// whole cascade back.
func DeleteListing(c *gin.Context) {
	db := config.GetDB()

	var listing models.Listing
	if err := db.First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		threadIDs := tx.Model(&models.ChatThread{}).
			Select("id").
			Where("listing_id = ?", listing.ID)

		if err := tx.Where("thread_id IN (?)", threadIDs).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.ChatThread{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&listing).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete listing")
		return
	}

	respondData(c, http.StatusOK, gin.H{"ok": true})
}
