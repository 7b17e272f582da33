package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/services"
	"github.com/agnivapalit/fixfinder/utils"
)

// UploadImage handles POST /uploads - accepts a PNG listing image and
// stores it, returning the storage key to reference from a listing
func UploadImage(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "Image file is required")
		return
	}

	imageService := services.GetImageService()
	key, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to upload image")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"key": key})
}

// GetImageURL handles GET /uploads/url?key=... - returns a short-lived
// presigned URL for an uploaded image
func GetImageURL(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		respondError(c, http.StatusBadRequest, "MISSING_KEY", "Image key is required")
		return
	}

	imageService := services.GetImageService()
	url, err := imageService.GetImageURL(key)
	if err != nil {
		respondError(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"url": url})
}
