package model

import "time"

const (
	TableName  = "messages"
	EntityName = "message"

	FieldID         = "id"
	FieldSenderID   = "sender_id"
	FieldReceiverID = "receiver_id"
	FieldRead       = "read"
)

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
