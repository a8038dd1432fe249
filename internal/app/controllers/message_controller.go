package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/services"
	"github.com/squadran/buildforge/internal/middleware"
)

// MessageController handles direct messaging between users.
type MessageController struct {
	messaging services.MessagingService
}

// NewMessageController creates a new MessageController.
func NewMessageController(messaging services.MessagingService) *MessageController {
	return &MessageController{messaging: messaging}
}

// SendMessage delivers a message from the session user.
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	message, err := c.messaging.SendMessage(ctx, middleware.UIDFromContext(ctx), req.ReceiverID, req.Text)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetConversation returns the full exchange between the session user and
// another user, oldest first.
func (c *MessageController) GetConversation(ctx *gin.Context) {
	messages, err := c.messaging.GetConversation(ctx, middleware.UIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// ListConversationPartners returns the ids the session user has exchanged
// messages with, in first-contact order.
func (c *MessageController) ListConversationPartners(ctx *gin.Context) {
	partners, err := c.messaging.ListConversationPartners(ctx, middleware.UIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partners))
}
