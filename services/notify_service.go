package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Notification events emitted on state-changing actions
const (
	EventBidPlaced       = "bid_placed"
	EventOfferSent       = "offer_sent"
	EventOfferAccepted   = "offer_accepted"
	EventJobDone         = "job_done"
	EventReviewCreated   = "review_created"
	EventMessageReceived = "message_received"
)

// Notifier delivers best-effort notifications. Delivery failure must never
// surface to the caller or abort the surrounding transaction.
type Notifier interface {
	Notify(event string, payload map[string]interface{})
}

var notifierInstance Notifier

// InitNotifier initializes the global notifier with the configured webhook URL
func InitNotifier(webhookURL string) Notifier {
	notifierInstance = &WebhookNotifier{
		url:    webhookURL,
		client: &http.Client{Timeout: 5 * time.Second},
	}
	return notifierInstance
}

// GetNotifier returns the global notifier instance
func GetNotifier() Notifier {
	return notifierInstance
}

// SetNotifier sets the notifier instance (primarily for testing)
func SetNotifier(n Notifier) {
	notifierInstance = n
}

// WebhookNotifier posts events to an external webhook. With no URL
// configured it only logs, which keeps local development quiet.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// Notify dispatches the event on a goroutine and returns immediately
func (n *WebhookNotifier) Notify(event string, payload map[string]interface{}) {
	if n.url == "" {
		log.Printf("[notify:mock] %s %v", event, payload)
		return
	}

	body := map[string]interface{}{"event": event}
	for k, v := range payload {
		body[k] = v
	}

	go func() {
		data, err := json.Marshal(body)
		if err != nil {
			log.Printf("Notify failed: %v", err)
			return
		}

		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(data))
		if err != nil {
			log.Printf("Notify failed: %v", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			log.Printf("Notify failed: webhook returned %d for event %s", resp.StatusCode, event)
		}
	}()
}
