package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

// MaxOffersPerListing caps offers per technician per listing, counted
// regardless of status
const MaxOffersPerListing = 3

var errOfferAlreadyAccepted = errors.New("another offer already accepted")

// SendOfferRequest represents the request body for sending an offer
type SendOfferRequest struct {
	RepairType  string `json:"repair_type" binding:"required,min=2,max=60"`
	Description string `json:"description" binding:"required,min=10,max=1000"`
	Location    string `json:"location" binding:"required,min=2,max=120"`
}

// SendOffer handles POST /listings/:id/offers - a technician sends a
// structured proposal. Guards: listing open, nothing accepted yet, caller
// under the 3-offer cap.
func SendOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SendOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.Preload("Customer").First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	now := time.Now()
	if listing.Status != models.ListingActive || !listing.ExpiresAt.After(now) {
		respondError(c, http.StatusBadRequest, "LISTING_NOT_OPEN", "Listing is not open")
		return
	}
	if listing.JobDoneAt != nil {
		respondError(c, http.StatusBadRequest, "ALREADY_DONE", "Job already marked done")
		return
	}

	var acceptedCount int64
	if err := db.Model(&models.Offer{}).
		Where("listing_id = ? AND status = ?", listing.ID, models.OfferAccepted).
		Count(&acceptedCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check offers")
		return
	}
	if acceptedCount > 0 {
		respondError(c, http.StatusBadRequest, "OFFER_ALREADY_ACCEPTED", "Offer already accepted for this listing")
		return
	}

	var count int64
	if err := db.Model(&models.Offer{}).
		Where("listing_id = ? AND technician_id = ?", listing.ID, user.ID).
		Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check offers")
		return
	}
	if count >= MaxOffersPerListing {
		respondError(c, http.StatusBadRequest, "OFFER_LIMIT_REACHED", "Offer limit reached (3)")
		return
	}

	offer := models.Offer{
		ListingID:    listing.ID,
		TechnicianID: user.ID,
		RepairType:   req.RepairType,
		Description:  req.Description,
		Location:     req.Location,
		Status:       models.OfferSent,
	}
	if err := db.Create(&offer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create offer")
		return
	}

	services.GetNotifier().Notify(services.EventOfferSent, map[string]interface{}{
		"listingId":    listing.ID,
		"offerId":      offer.ID,
		"toEmail":      listing.Customer.Email,
		"customerId":   listing.CustomerID,
		"technicianId": user.ID,
	})

	respondData(c, http.StatusCreated, offer)
}

// ListOffers handles GET /listings/:id/offers - owner and admin see all,
// a technician sees only their own
func ListOffers(c *gin.Context) {
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
	isAdmin := role == models.RoleAdmin

	query := db.Where("listing_id = ?", listing.ID)
	switch {
	case isOwner || isAdmin:
		// all offers
	case role == models.RoleTechnician:
		query = query.Where("technician_id = ?", user.ID)
	default:
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to view these offers")
		return
	}

	var offers []models.Offer
	if err := query.Order("created_at DESC").
		Preload("Technician").
		Find(&offers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch offers")
		return
	}

	respondData(c, http.StatusOK, offers)
}

// AcceptOffer handles POST /offers/:id/accept - the listing owner (or an
// admin) accepts one offer. In a single transaction the offer becomes
// ACCEPTED, every other SENT offer on the listing becomes REJECTED, and
// the listing closes with the technician recorded. The already-accepted
// guard is re-checked inside the transaction so two concurrent accepts
// cannot both commit.
func AcceptOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var offer models.Offer
	if err := db.Preload("Listing").Preload("Technician").
		First(&offer, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "OFFER_NOT_FOUND", "Offer not found")
		return
	}

	role, _ := middleware.GetUserRole(c)
	isOwner := role == models.RoleCustomer && offer.Listing.CustomerID == user.ID
	isAdmin := role == models.RoleAdmin
	if !isOwner && !isAdmin {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to accept this offer")
		return
	}

	if offer.Listing.JobDoneAt != nil {
		respondError(c, http.StatusBadRequest, "ALREADY_DONE", "Job already done")
		return
	}
	if offer.Listing.Status != models.ListingActive {
		respondError(c, http.StatusBadRequest, "LISTING_NOT_ACTIVE", "Listing not active")
		return
	}
	if offer.Status != models.OfferSent {
		respondError(c, http.StatusBadRequest, "OFFER_NOT_SENT", "Offer not in SENT state")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var acceptedCount int64
		if err := tx.Model(&models.Offer{}).
			Where("listing_id = ? AND status = ?", offer.ListingID, models.OfferAccepted).
			Count(&acceptedCount).Error; err != nil {
			return err
		}
		if acceptedCount > 0 {
			return errOfferAlreadyAccepted
		}

		if err := tx.Model(&models.Offer{}).
			Where("id = ?", offer.ID).
			Update("status", models.OfferAccepted).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Offer{}).
			Where("listing_id = ? AND status = ? AND id <> ?", offer.ListingID, models.OfferSent, offer.ID).
			Update("status", models.OfferRejected).Error; err != nil {
			return err
		}

		return tx.Model(&models.Listing{}).
			Where("id = ?", offer.ListingID).
			Updates(map[string]interface{}{
				"status":                 models.ListingClosed,
				"accepted_technician_id": offer.TechnicianID,
			}).Error
	})
	if err != nil {
		if errors.Is(err, errOfferAlreadyAccepted) {
			respondError(c, http.StatusBadRequest, "OFFER_ALREADY_ACCEPTED", "Another offer already accepted")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to accept offer")
		return
	}

	services.GetNotifier().Notify(services.EventOfferAccepted, map[string]interface{}{
		"listingId":    offer.ListingID,
		"offerId":      offer.ID,
		"toEmail":      offer.Technician.Email,
		"technicianId": offer.TechnicianID,
	})

	respondData(c, http.StatusOK, gin.H{"ok": true})
}
