package dto

import (
	"hostel/internal/domains/message/model"
	profileModel "hostel/internal/domains/profile/model"
)

type SendMessageRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// MessageDetail is a message with both participants.
type MessageDetail struct {
	model.Message
	Sender   *profileModel.Profile `json:"sender" embed:"profiles!messages_sender_id_fkey"`
	Receiver *profileModel.Profile `json:"receiver" embed:"profiles!messages_receiver_id_fkey"`
}
