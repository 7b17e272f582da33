package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/agnivapalit/fixfinder/utils"
)

// MockImageService is an in-memory ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage simulates uploading an image
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	imageKey := fmt.Sprintf("listings/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedImages[imageKey] = content
	m.mu.Unlock()

	return imageKey, nil
}

// GetImageURL simulates generating a URL for an image
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedImages[imageKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found in mock storage: %s", imageKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", imageKey), nil
}

// DeleteImage simulates deleting an image
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedImages, imageKey)
	m.mu.Unlock()

	return nil
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[imageKey]
	return exists
}

// Clear removes all images from mock storage
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.uploadedImages = make(map[string][]byte)
	m.mu.Unlock()
}
