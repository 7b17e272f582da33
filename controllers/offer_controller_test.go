package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/models"
)

func offerBody() map[string]interface{} {
	return map[string]interface{}{
		"repair_type": "tap replacement",
		"description": "replace the worn cartridge and reseal the base",
		"location":    "Cape Town",
	}
}

func createOffer(t *testing.T, db *gorm.DB, listingID, technicianID uint) *models.Offer {
	t.Helper()

	offer := models.Offer{
		ListingID:    listingID,
		TechnicianID: technicianID,
		RepairType:   "tap replacement",
		Description:  "replace the worn cartridge and reseal the base",
		Location:     "Cape Town",
		Status:       models.OfferSent,
	}
	if err := db.Create(&offer).Error; err != nil {
		t.Fatalf("Failed to create offer: %v", err)
	}
	return &offer
}

func TestSendOffer(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "customer@example.com")
	tech := createTechnician(t, db, "tech@example.com", true)

	router := setupTestRouter()
	router.POST("/listings/:id/offers", mockAuthMiddleware(tech.ID, tech.Role), SendOffer)

	t.Run("Successfully send offer", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())

		assert.Equal(t, http.StatusCreated, w.Code)
		data := responseData(t, w)
		assert.Equal(t, models.OfferSent, data["status"])
	})

	t.Run("Fourth offer is rejected", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		for i := 0; i < 3; i++ {
			w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "OFFER_LIMIT_REACHED", errorCode(t, w))
	})

	t.Run("Rejected offers still count toward the cap", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		for i := 0; i < 3; i++ {
			offer := createOffer(t, db, listing.ID, tech.ID)
			db.Model(offer).Update("status", models.OfferRejected)
		}

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "OFFER_LIMIT_REACHED", errorCode(t, w))
	})

	t.Run("Fail when an offer is already accepted", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		other := createTechnician(t, db, "other@example.com", true)
		offer := createOffer(t, db, listing.ID, other.ID)
		db.Model(offer).Update("status", models.OfferAccepted)

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "OFFER_ALREADY_ACCEPTED", errorCode(t, w))
	})

	t.Run("Fail on closed listing", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		db.Model(listing).Update("status", models.ListingClosed)

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/offers", offerBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "LISTING_NOT_OPEN", errorCode(t, w))
	})
}

func TestAcceptOffer(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "customer@example.com")
	stranger := createCustomer(t, db, "stranger@example.com")
	techA := createTechnician(t, db, "tech-a@example.com", true)
	techB := createTechnician(t, db, "tech-b@example.com", true)

	t.Run("Accept closes the listing and rejects the rest", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		winning := createOffer(t, db, listing.ID, techA.ID)
		losing := createOffer(t, db, listing.ID, techB.ID)

		router := setupTestRouter()
		router.POST("/offers/:id/accept", mockAuthMiddleware(customer.ID, customer.Role), AcceptOffer)

		w := performJSON(router, http.MethodPost, "/offers/"+itoa(winning.ID)+"/accept", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var reloadedWinning, reloadedLosing models.Offer
		db.First(&reloadedWinning, winning.ID)
		db.First(&reloadedLosing, losing.ID)
		assert.Equal(t, models.OfferAccepted, reloadedWinning.Status)
		assert.Equal(t, models.OfferRejected, reloadedLosing.Status)

		var reloadedListing models.Listing
		db.First(&reloadedListing, listing.ID)
		assert.Equal(t, models.ListingClosed, reloadedListing.Status)
		if assert.NotNil(t, reloadedListing.AcceptedTechnicianID) {
			assert.Equal(t, techA.ID, *reloadedListing.AcceptedTechnicianID)
		}
	})

	t.Run("Second accept on the same listing fails", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		first := createOffer(t, db, listing.ID, techA.ID)
		second := createOffer(t, db, listing.ID, techB.ID)

		router := setupTestRouter()
		router.POST("/offers/:id/accept", mockAuthMiddleware(customer.ID, customer.Role), AcceptOffer)

		w := performJSON(router, http.MethodPost, "/offers/"+itoa(first.ID)+"/accept", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = performJSON(router, http.MethodPost, "/offers/"+itoa(second.ID)+"/accept", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Non-owner cannot accept", func(t *testing.T) {
		listing := createListing(t, db, customer.ID)
		offer := createOffer(t, db, listing.ID, techA.ID)

		router := setupTestRouter()
		router.POST("/offers/:id/accept", mockAuthMiddleware(stranger.ID, stranger.Role), AcceptOffer)

		w := performJSON(router, http.MethodPost, "/offers/"+itoa(offer.ID)+"/accept", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin can accept on behalf of the owner", func(t *testing.T) {
		admin := createAdmin(t, db, "admin@example.com")
		listing := createListing(t, db, customer.ID)
		offer := createOffer(t, db, listing.ID, techA.ID)

		router := setupTestRouter()
		router.POST("/offers/:id/accept", mockAuthMiddleware(admin.ID, admin.Role), AcceptOffer)

		w := performJSON(router, http.MethodPost, "/offers/"+itoa(offer.ID)+"/accept", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing offer returns not found", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/offers/:id/accept", mockAuthMiddleware(customer.ID, customer.Role), AcceptOffer)

		w := performJSON(router, http.MethodPost, "/offers/99999/accept", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListOffers(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "customer@example.com")
	techA := createTechnician(t, db, "tech-a@example.com", true)
	techB := createTechnician(t, db, "tech-b@example.com", true)
	listing := createListing(t, db, customer.ID)

	createOffer(t, db, listing.ID, techA.ID)
	createOffer(t, db, listing.ID, techB.ID)

	t.Run("Owner sees every offer", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/offers", mockAuthMiddleware(customer.ID, customer.Role), ListOffers)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/offers", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w)["data"].([]interface{}), 2)
	})

	t.Run("Technician sees only their own", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/offers", mockAuthMiddleware(techA.ID, techA.Role), ListOffers)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/offers", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w)["data"].([]interface{}), 1)
	})
}
