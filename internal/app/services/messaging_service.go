package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/pkg/idgen"
)

// MessagingService defines direct-message storage and conversation
// partner derivation. Whether two users may message each other is decided
// by IdentityService.ListConnections; this service only stores and reads.
type MessagingService interface {
	SendMessage(ctx context.Context, senderID, receiverID, text string) (*models.Message, error)
	// GetConversation returns the full history between two users, oldest
	// first.
	GetConversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error)
	// ListConversationPartners returns the ids of every user the given
	// user has exchanged at least one message with.
	ListConversationPartners(ctx context.Context, userID string) ([]string, error)
}

type messagingServiceImpl struct {
	repos  *repositories.Repositories
	gen    *idgen.Generator
	logger zerolog.Logger
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(
	repos *repositories.Repositories,
	gen *idgen.Generator,
	logger zerolog.Logger,
) MessagingService {
	return &messagingServiceImpl{
		repos:  repos,
		gen:    gen,
		logger: logger,
	}
}

// SendMessage appends a new unread message.
func (s *messagingServiceImpl) SendMessage(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	message := models.Message{
		ID:         s.gen.NewID("m"),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  s.gen.Now(),
		Read:       false,
	}

	if _, err := s.repos.Messages.Update(ctx, func(messages []models.Message) ([]models.Message, error) {
		return append(messages, message), nil
	}); err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversation returns both directions of the exchange, sorted by
// timestamp ascending.
func (s *messagingServiceImpl) GetConversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error) {
	messages, err := s.repos.Messages.All(ctx)
	if err != nil {
		return nil, err
	}

	conversation := []models.Message{}
	for _, m := range messages {
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.SenderID == otherUserID && m.ReceiverID == userID) {
			conversation = append(conversation, m)
		}
	}

	sort.SliceStable(conversation, func(i, j int) bool {
		return conversation[i].Timestamp < conversation[j].Timestamp
	})
	return conversation, nil
}

// ListConversationPartners returns partner ids in first-contact order.
func (s *messagingServiceImpl) ListConversationPartners(ctx context.Context, userID string) ([]string, error) {
	messages, err := s.repos.Messages.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	partners := []string{}
	add := func(uid string) {
		if !seen[uid] {
			seen[uid] = true
			partners = append(partners, uid)
		}
	}
	for _, m := range messages {
		if m.SenderID == userID {
			add(m.ReceiverID)
		}
		if m.ReceiverID == userID {
			add(m.SenderID)
		}
	}
	return partners, nil
}
