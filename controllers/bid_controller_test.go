package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agnivapalit/fixfinder/models"
)

func TestPlaceBid(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "customer@example.com")
	tech := createTechnician(t, db, "tech@example.com", true)
	listing := createListing(t, db, customer.ID)

	router := setupTestRouter()
	router.POST("/listings/:id/bids", mockAuthMiddleware(tech.ID, tech.Role), PlaceBid)

	t.Run("Successfully place bid", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/bids", map[string]interface{}{
			"price_cents": 5000,
			"note":        "can come tomorrow",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := responseData(t, w)
		assert.Equal(t, float64(5000), data["price_cents"])
	})

	t.Run("Second bid replaces the first", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/bids", map[string]interface{}{
			"price_cents": 4500,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var bids []models.Bid
		db.Where("listing_id = ? AND technician_id = ?", listing.ID, tech.ID).Find(&bids)
		assert.Len(t, bids, 1)
		assert.Equal(t, 4500, bids[0].PriceCents)
	})

	t.Run("Fail with price below minimum", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/listings/"+itoa(listing.ID)+"/bids", map[string]interface{}{
			"price_cents": 50,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "PRICE_TOO_LOW", errorCode(t, w))
	})

	t.Run("Fail on expired listing", func(t *testing.T) {
		expired := createListing(t, db, customer.ID)
		db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour))

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(expired.ID)+"/bids", map[string]interface{}{
			"price_cents": 5000,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "LISTING_NOT_OPEN", errorCode(t, w))
	})

	t.Run("Fail on closed listing", func(t *testing.T) {
		closed := createListing(t, db, customer.ID)
		db.Model(closed).Update("status", models.ListingClosed)

		w := performJSON(router, http.MethodPost, "/listings/"+itoa(closed.ID)+"/bids", map[string]interface{}{
			"price_cents": 5000,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "LISTING_NOT_OPEN", errorCode(t, w))
	})

	t.Run("Fail on missing listing", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/listings/99999/bids", map[string]interface{}{
			"price_cents": 5000,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "LISTING_NOT_FOUND", errorCode(t, w))
	})
}

func TestListBids(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "customer@example.com")
	stranger := createCustomer(t, db, "stranger@example.com")
	cheapTech := createTechnician(t, db, "cheap@example.com", true)
	ratedTech := createTechnician(t, db, "rated@example.com", true)
	listing := createListing(t, db, customer.ID)

	db.Model(&models.TechnicianProfile{}).
		Where("user_id = ?", ratedTech.ID).
		Updates(map[string]interface{}{"rating_avg": 4.5, "rating_count": 10})

	db.Create(&models.Bid{ListingID: listing.ID, TechnicianID: cheapTech.ID, PriceCents: 2000})
	db.Create(&models.Bid{ListingID: listing.ID, TechnicianID: ratedTech.ID, PriceCents: 8000})

	bidPrices := func(t *testing.T, response map[string]interface{}) []float64 {
		t.Helper()
		items := response["data"].([]interface{})
		prices := make([]float64, 0, len(items))
		for _, item := range items {
			prices = append(prices, item.(map[string]interface{})["price_cents"].(float64))
		}
		return prices
	}

	t.Run("Owner sees all bids sorted by price", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/bids", mockAuthMiddleware(customer.ID, customer.Role), ListBids)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/bids?sort=price_asc", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []float64{2000, 8000}, bidPrices(t, parseResponse(t, w)))
	})

	t.Run("Rating sort puts the rated technician first", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/bids", mockAuthMiddleware(customer.ID, customer.Role), ListBids)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/bids?sort=rating_desc", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []float64{8000, 2000}, bidPrices(t, parseResponse(t, w)))
	})

	t.Run("Technician sees only their own bid", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/bids", mockAuthMiddleware(cheapTech.ID, cheapTech.Role), ListBids)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/bids", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []float64{2000}, bidPrices(t, parseResponse(t, w)))
	})

	t.Run("Non-owner customer is rejected", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/bids", mockAuthMiddleware(stranger.ID, stranger.Role), ListBids)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/bids", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown sort key is rejected", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/listings/:id/bids", mockAuthMiddleware(customer.ID, customer.Role), ListBids)

		w := performJSON(router, http.MethodGet, "/listings/"+itoa(listing.ID)+"/bids?sort=nonsense", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SORT", errorCode(t, w))
	})
}
