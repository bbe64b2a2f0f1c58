package amqp

import (
	"encoding/json"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/core"

	"github.com/google/uuid"
)

// RecordAppendedMessage describes one ledger append for downstream consumers.
type RecordAppendedMessage struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
}

func NewRecordAppendedMessage(rec core.Record) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		EventID:   uuid.NewString(),
		Timestamp: rec.Time,
		User:      rec.User,
		Kind:      rec.Kind.Label(),
		Amount:    rec.Amount,
		Category:  rec.Category,
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordAppendedMessageFromJSON creates a message from JSON bytes
func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
