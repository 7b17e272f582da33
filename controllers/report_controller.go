package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
)

// CreateReportRequest represents the request body for reporting a listing
// counterparty
type CreateReportRequest struct {
	Reason            string `json:"reason" binding:"required,min=3,max=1000"`
	IncludeTranscript bool   `json:"include_transcript"`
}

// CreateReport handles POST /listings/:id/report - a customer reports the
// accepted technician, or a technician reports the listing owner. When
// asked, the reporter's chat transcript with the counterparty is
// snapshotted into the report for admin review.
func CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReportRequest
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

	role, _ := middleware.GetUserRole(c)
	var reportedID uint
	var technicianID uint

	switch role {
	case models.RoleCustomer:
		if listing.CustomerID != user.ID {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Not your listing")
			return
		}
		if listing.AcceptedTechnicianID == nil {
			respondError(c, http.StatusBadRequest, "NO_COUNTERPARTY", "No technician to report on this listing")
			return
		}
		reportedID = *listing.AcceptedTechnicianID
		technicianID = reportedID
	case models.RoleTechnician:
		reportedID = listing.CustomerID
		technicianID = user.ID
	default:
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only marketplace participants can file reports")
		return
	}

	report := models.Report{
		ListingID:  listing.ID,
		ReporterID: user.ID,
		ReportedID: reportedID,
		Reason:     req.Reason,
	}

	if req.IncludeTranscript {
		var thread models.ChatThread
		err := db.Where("listing_id = ? AND technician_id = ?", listing.ID, technicianID).
			First(&thread).Error
		if err == nil {
			transcript, terr := threadTranscript(db, thread.ID)
			if terr != nil {
				respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build transcript")
				return
			}
			report.Transcript = &transcript
		} else if err != gorm.ErrRecordNotFound {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load thread")
			return
		}
	}

	if err := db.Create(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create report")
		return
	}

	respondData(c, http.StatusCreated, report)
}
