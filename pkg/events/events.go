// Package events publishes reservation lifecycle events to Kafka so that
// downstream tooling (notifications, reporting) can react without polling the
// database. Publishing is best-effort: a failed publish is logged by the
// caller, never surfaced to the API client.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeReservationCreated          = "reservation.created"
	TypeReservationUpdated          = "reservation.updated"
	TypeReservationStatusChanged    = "reservation.status_changed"
	TypeReservationEmployerAssigned = "reservation.employer_assigned"
	TypeReservationInvoiceUpdated   = "reservation.invoice_updated"
	TypeReservationDeleted          = "reservation.deleted"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event is one reservation lifecycle notification. Key is the reservation ID
// so all events of one reservation land on the same partition, in order.
type Event struct {
	ID        string
	Type      string
	Key       string
	Payload   any
	Timestamp time.Time
}

func New(eventType, reservationID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Key:       reservationID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) MarshalPayload() ([]byte, error) {
	return json.Marshal(e.Payload)
}
