package models

// Message is a direct message between two users. Immutable after creation.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	Read       bool   `json:"read"`
}
