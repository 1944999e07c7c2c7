package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/roamstack/tourism-api/internal/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus satisfies Publisher when no broker is configured (dev mode).
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "event dropped, no broker configured", "subject", subject)
	return nil
}

func (NoopBus) Close() error { return nil }

// Event subjects
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingCancelled     = "booking.cancelled"
	ApplicationSubmitted = "guide.application.submitted"
	EventRegistered      = "event.registration.created"
	PaymentRecorded      = "payment.recorded"
)

// Event payloads
type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Email       string    `json:"email"`
	GuideName   string    `json:"guide_name"`
	PackageName string    `json:"package_name"`
	TourDate    time.Time `json:"tour_date"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingStatusChangedEvent struct {
	BookingID int64     `json:"booking_id"`
	Email     string    `json:"email"`
	GuideName string    `json:"guide_name"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

type ApplicationSubmittedEvent struct {
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type EventRegisteredEvent struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

type PaymentRecordedEvent struct {
	PaymentID     int64   `json:"payment_id"`
	Email         string  `json:"email"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}
