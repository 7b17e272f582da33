package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListing_IsOpen(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)

	tests := []struct {
		name     string
		listing  Listing
		expected bool
	}{
		{
			name:     "Active within window",
			listing:  Listing{Status: ListingActive, ExpiresAt: now.Add(time.Hour)},
			expected: true,
		},
		{
			name:     "Active but expired",
			listing:  Listing{Status: ListingActive, ExpiresAt: now.Add(-time.Minute)},
			expected: false,
		},
		{
			name:     "Closed within window",
			listing:  Listing{Status: ListingClosed, ExpiresAt: now.Add(time.Hour)},
			expected: false,
		},
		{
			name:     "Active but job done",
			listing:  Listing{Status: ListingActive, ExpiresAt: now.Add(time.Hour), JobDoneAt: &done},
			expected: false,
		},
		{
			name:     "Expiring exactly now",
			listing:  Listing{Status: ListingActive, ExpiresAt: now},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.listing.IsOpen(now))
		})
	}
}
