package amqp

import (
	"encoding/json"
	"time"
)

// TransactionSyncMessage is a lightweight message for syncing a transaction to
// the spreadsheet. It carries only identifiers, the worker fetches the full
// transaction from the database.
type TransactionSyncMessage struct {
	QueueID       int64     `json:"queueId"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransactionSyncMessage(queueID int64, transactionID string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		QueueID:       queueID,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
