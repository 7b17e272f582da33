package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"Valid PNG", "photo.png", 1024, ""},
		{"Uppercase extension", "PHOTO.PNG", 1024, ""},
		{"JPEG rejected", "photo.jpg", 1024, "INVALID_FILE_FORMAT"},
		{"No extension", "photo", 1024, "INVALID_FILE_FORMAT"},
		{"Too large", "photo.png", MaxFileSize + 1, "FILE_TOO_LARGE"},
		{"Exactly at the limit", "photo.png", MaxFileSize, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidateImageFile(header)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			assert.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
