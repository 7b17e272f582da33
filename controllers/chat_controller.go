package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

// canTechnicianAct is the messaging gate for technicians: the job is not
// done, and either no technician has been accepted or the caller is the
// accepted one. A pure predicate over current state, evaluated fresh at
// thread creation and again for every message.
func canTechnicianAct(listing *models.Listing, technicianID uint) bool {
	if listing.JobDoneAt != nil {
		return false
	}
	return listing.AcceptedTechnicianID == nil || *listing.AcceptedTechnicianID == technicianID
}

// CreateThreadRequest represents the request body for opening a thread
type CreateThreadRequest struct {
	ListingID    uint  `json:"listing_id" binding:"required"`
	TechnicianID *uint `json:"technician_id"`
}

// CreateThread handles POST /chat/threads - creates or returns the thread
// for a (listing, technician) pair. Customers name the technician,
// technicians imply themselves, admins must name one.
func CreateThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var listing models.Listing
	if err := db.First(&listing, req.ListingID).Error; err != nil {
		respondError(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
		return
	}

	role, _ := middleware.GetUserRole(c)
	var techID uint

	switch role {
	case models.RoleCustomer:
		if listing.CustomerID != user.ID {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Not your listing")
			return
		}
		if req.TechnicianID == nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "technician_id is required")
			return
		}
		if listing.JobDoneAt != nil {
			respondError(c, http.StatusBadRequest, "MESSAGING_CLOSED", "Job is done. Messaging closed.")
			return
		}
		if listing.AcceptedTechnicianID != nil && *listing.AcceptedTechnicianID != *req.TechnicianID {
			respondError(c, http.StatusBadRequest, "LISTING_ACCEPTED", "Listing already accepted by a different technician")
			return
		}
		techID = *req.TechnicianID
	case models.RoleTechnician:
		if !canTechnicianAct(&listing, user.ID) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Messaging closed for this listing")
			return
		}
		techID = user.ID
	case models.RoleAdmin:
		if req.TechnicianID == nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "technician_id is required for admin")
			return
		}
		techID = *req.TechnicianID
	}

	thread := models.ChatThread{
		ListingID:    listing.ID,
		TechnicianID: techID,
	}
	err := db.Where("listing_id = ? AND technician_id = ?", listing.ID, techID).
		Attrs(models.ChatThread{CustomerID: listing.CustomerID}).
		FirstOrCreate(&thread).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create thread")
		return
	}

	respondData(c, http.StatusCreated, thread)
}

// ListThreads handles GET /chat/threads - the caller's inbox ordered by
// latest activity, with the most recent message attached
func ListThreads(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	role, _ := middleware.GetUserRole(c)

	query := db.Model(&models.ChatThread{})
	switch role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", user.ID)
	case models.RoleTechnician:
		query = query.Where("technician_id = ?", user.ID)
	case models.RoleAdmin:
		// admins see every thread
	}

	var threads []models.ChatThread
	if err := query.Order("updated_at DESC").
		Preload("Listing").
		Preload("Customer").
		Preload("Technician").
		Find(&threads).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch threads")
		return
	}

	inbox := make([]gin.H, 0, len(threads))
	for i := range threads {
		t := &threads[i]

		var last models.Message
		lastErr := db.Where("thread_id = ?", t.ID).
			Order("created_at DESC").
			First(&last).Error

		entry := gin.H{
			"id":               t.ID,
			"listing_id":       t.ListingID,
			"updated_at":       t.UpdatedAt,
			"listing":          gin.H{"title": t.Listing.Title, "category": t.Listing.Category},
			"customer_email":   t.Customer.Email,
			"technician_email": t.Technician.Email,
		}
		if lastErr == nil {
			entry["last_message"] = gin.H{
				"body":       last.Body,
				"created_at": last.CreatedAt,
				"sender_id":  last.SenderID,
			}
		} else {
			entry["last_message"] = nil
		}
		inbox = append(inbox, entry)
	}

	respondData(c, http.StatusOK, inbox)
}

// ListMessages handles GET /chat/threads/:id/messages - participants and
// admins only
func ListMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var thread models.ChatThread
	if err := db.First(&thread, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "THREAD_NOT_FOUND", "Thread not found")
		return
	}

	role, _ := middleware.GetUserRole(c)
	if !thread.IsParticipant(user.ID, role) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to view this thread")
		return
	}

	var messages []models.Message
	if err := db.Where("thread_id = ?", thread.ID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch messages")
		return
	}

	respondData(c, http.StatusOK, messages)
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// SendMessage handles POST /chat/threads/:id/messages - the technician
// gate is re-evaluated here because listing state may have changed since
// the thread was created
func SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var thread models.ChatThread
	if err := db.Preload("Listing").Preload("Customer").Preload("Technician").
		First(&thread, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "THREAD_NOT_FOUND", "Thread not found")
		return
	}

	role, _ := middleware.GetUserRole(c)
	if !thread.IsParticipant(user.ID, role) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to message in this thread")
		return
	}

	if role == models.RoleTechnician {
		if thread.Listing.JobDoneAt != nil {
			respondError(c, http.StatusBadRequest, "MESSAGING_CLOSED", "Job is done. Messaging closed.")
			return
		}
		if !canTechnicianAct(&thread.Listing, user.ID) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Listing accepted by another technician")
			return
		}
	}

	message := models.Message{
		ThreadID: thread.ID,
		SenderID: user.ID,
		Body:     req.Body,
	}
	if err := db.Create(&message).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create message")
		return
	}

	// Bump the thread so the inbox orders by latest activity
	if err := db.Model(&models.ChatThread{}).
		Where("id = ?", thread.ID).
		Update("updated_at", time.Now()).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update thread")
		return
	}

	recipient := thread.Customer
	if user.ID == thread.CustomerID {
		recipient = thread.Technician
	}
	services.GetNotifier().Notify(services.EventMessageReceived, map[string]interface{}{
		"threadId":  thread.ID,
		"listingId": thread.ListingID,
		"toEmail":   recipient.Email,
		"toUserId":  recipient.ID,
	})

	respondData(c, http.StatusCreated, message)
}

// threadTranscript renders a thread's messages for bundling into a report
func threadTranscript(db *gorm.DB, threadID uint) (string, error) {
	var messages []models.Message
	if err := db.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return "", err
	}

	transcript := ""
	for _, m := range messages {
		transcript += m.CreatedAt.Format(time.RFC3339) + " " + m.Sender.Email + ": " + m.Body + "\n"
	}
	return transcript, nil
}
