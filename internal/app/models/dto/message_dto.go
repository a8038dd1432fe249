package dto

// SendMessageRequest sends a direct message from the session user.
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}
