package services

import (
	"sync"
)

// MockNotifier records notifications for test assertions
type MockNotifier struct {
	mu     sync.Mutex
	events []RecordedEvent
}

// RecordedEvent is one captured notification
type RecordedEvent struct {
	Event   string
	Payload map[string]interface{}
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SetAsMockForTesting sets this mock as the global notifier instance
func (m *MockNotifier) SetAsMockForTesting() {
	SetNotifier(m)
}

// Notify records the event synchronously
func (m *MockNotifier) Notify(event string, payload map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, RecordedEvent{Event: event, Payload: payload})
}

// Events returns a copy of the recorded events
func (m *MockNotifier) Events() []RecordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Clear discards recorded events
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
