package billing

import (
	"context"
	"errors"
	"time"
)

var ErrEventIDRequired = errors.New("event ID is required")

// ProcessedEvent marks a payment-provider event as fully handled.
type ProcessedEvent struct {
	eventID     string
	eventType   string
	processedAt time.Time
}

func NewProcessedEvent(eventID, eventType string) (*ProcessedEvent, error) {
	if eventID == "" {
		return nil, ErrEventIDRequired
	}
	return &ProcessedEvent{
		eventID:     eventID,
		eventType:   eventType,
		processedAt: time.Now().UTC(),
	}, nil
}

func ReconstructProcessedEvent(eventID, eventType string, processedAt time.Time) *ProcessedEvent {
	return &ProcessedEvent{eventID: eventID, eventType: eventType, processedAt: processedAt}
}

func (e *ProcessedEvent) EventID() string { return e.eventID }
func (e *ProcessedEvent) EventType() string { return e.eventType }
func (e *ProcessedEvent) ProcessedAt() time.Time { return e.processedAt }

// ProcessedEventRepository is the append-only deduplication ledger.
type ProcessedEventRepository interface {
	Exists(ctx context.Context, eventID string) (bool, error)
	// Record is idempotent: recording an existing event ID is not an error.
	Record(ctx context.Context, event *ProcessedEvent) error
}
