package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

// MinBidPriceCents is the lowest accepted bid, in minor currency units
const MinBidPriceCents = 100

// PlaceBidRequest represents the request body for placing a bid
type PlaceBidRequest struct {
	PriceCents int     `json:"price_cents" binding:"required"`
	Note       *string `json:"note" binding:"omitempty,max=500"`
}

// PlaceBid handles POST /listings/:id/bids - upserts the caller's bid on a
// listing. A second call from the same technician replaces price and note;
// the composite unique key guarantees a single row even under concurrent
// double-submission.
func PlaceBid(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.PriceCents < MinBidPriceCents {
		respondError(c, http.StatusBadRequest, "PRICE_TOO_LOW", "Bid price must be at least 100 cents")
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.Preload("Customer").First(&listing, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	if listing.Status != models.ListingActive || !listing.ExpiresAt.After(time.Now()) {
		respondError(c, http.StatusBadRequest, "LISTING_NOT_OPEN", "Listing is not open")
		return
	}

	bid := models.Bid{
		ListingID:    listing.ID,
		TechnicianID: user.ID,
		PriceCents:   req.PriceCents,
		Note:         req.Note,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "listing_id"}, {Name: "technician_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_cents", "note", "updated_at"}),
	}).Create(&bid).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to place bid")
		return
	}

	// Reload by key: on conflict the returned struct does not carry the
	// existing row's id
	if err := db.Where("listing_id = ? AND technician_id = ?", listing.ID, user.ID).
		First(&bid).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load bid")
		return
	}

	services.GetNotifier().Notify(services.EventBidPlaced, map[string]interface{}{
		"listingId":    listing.ID,
		"bidId":        bid.ID,
		"toEmail":      listing.Customer.Email,
		"customerId":   listing.CustomerID,
		"technicianId": user.ID,
	})

	respondData(c, http.StatusCreated, bid)
}

// bidSortClauses maps the supported sort keys to SQL order clauses.
// Rating sorts read the bidding technician's profile.
var bidSortClauses = map[string]string{
	"price_asc":   "bids.price_cents ASC",
	"price_desc":  "bids.price_cents DESC",
	"rating_asc":  "technician_profiles.rating_avg ASC",
	"rating_desc": "technician_profiles.rating_avg DESC",
}

// ListBids handles GET /listings/:id/bids - owner and admin see every bid,
// a technician sees only their own
func ListBids(c *gin.Context) {
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

	sort := c.DefaultQuery("sort", "price_asc")
	orderClause, valid := bidSortClauses[sort]
	if !valid {
		respondError(c, http.StatusBadRequest, "INVALID_SORT", "Unknown sort key")
		return
	}

	role, _ := middleware.GetUserRole(c)
	isOwner := role == models.RoleCustomer && listing.CustomerID == user.ID
	isAdmin := role == models.RoleAdmin

	query := db.Model(&models.Bid{}).
		Joins("JOIN technician_profiles ON technician_profiles.user_id = bids.technician_id").
		Where("bids.listing_id = ?", listing.ID)

	switch {
	case isOwner || isAdmin:
		// all bids
	case role == models.RoleTechnician:
		query = query.Where("bids.technician_id = ?", user.ID)
	default:
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to view these bids")
		return
	}

	var bids []models.Bid
	if err := query.Order(orderClause).
		Preload("Technician.TechnicianProfile").
		Find(&bids).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch bids")
		return
	}

	respondData(c, http.StatusOK, bids)
}
