package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWebhookNotifier_PostsEvent(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		json.Unmarshal(body, &payload)
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := InitNotifier(server.URL)
	notifier.Notify(EventBidPlaced, map[string]interface{}{"listingId": 7})

	select {
	case payload := <-received:
		assert.Equal(t, EventBidPlaced, payload["event"])
		assert.Equal(t, float64(7), payload["listingId"])
	case <-time.After(2 * time.Second):
		t.Fatal("Webhook was never called")
	}
}

func TestWebhookNotifier_NoURLOnlyLogs(t *testing.T) {
	notifier := InitNotifier("")

	// must not panic or block
	notifier.Notify(EventJobDone, map[string]interface{}{"listingId": 1})
}

func TestWebhookNotifier_FailureDoesNotSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := InitNotifier(server.URL)

	// Notify has no error return; a failing webhook must be invisible here
	notifier.Notify(EventOfferAccepted, map[string]interface{}{"offerId": 3})
	time.Sleep(100 * time.Millisecond)
}

func TestMockNotifier(t *testing.T) {
	mock := NewMockNotifier()
	mock.SetAsMockForTesting()

	GetNotifier().Notify(EventReviewCreated, map[string]interface{}{"rating": 5})
	GetNotifier().Notify(EventMessageReceived, map[string]interface{}{"threadId": 2})

	events := mock.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, EventReviewCreated, events[0].Event)
	assert.Equal(t, 5, events[0].Payload["rating"])

	mock.Clear()
	assert.Empty(t, mock.Events())
}
