package services

import (
	"context"
	"fmt"
	"strings"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// MessageService defines the interface for direct messaging
type MessageService interface {
	Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*models.Message, error)
	Conversations(ctx context.Context, userID string) ([]*models.Conversation, error)
	Thread(ctx context.Context, userID, otherID string) ([]*models.Message, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageRepo  repositories.IMessageRepository
	profileRepo  repositories.IProfileRepository
	authzService *appAuth.AuthorizationService
	publisher    EventPublisher
	logger       zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repositories.IMessageRepository,
	profileRepo repositories.IProfileRepository,
	authzService *appAuth.AuthorizationService,
	publisher EventPublisher,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		messageRepo:  messageRepo,
		profileRepo:  profileRepo,
		authzService: authzService,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
	}
}

// Send delivers a message and notifies only the two parties
func (s *messageServiceImpl) Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("Message content is required")
	}
	if req.ReceiverID == senderID {
		return nil, apperrors.NewBadRequestError("You cannot message yourself")
	}
	if _, err := s.authzService.RequireActiveProfile(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         newID(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("messageID", msg.ID).Str("senderID", senderID).Str("receiverID", msg.ReceiverID).Msg("Message sent")
	publishTo(s.publisher, websocket.NewEvent(websocket.EventMessagesChanged, dto.NewMessageResponse(msg)), msg.SenderID, msg.ReceiverID)
	return msg, nil
}

// Conversations is the contact list: one entry per counterpart, newest first
func (s *messageServiceImpl) Conversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	convs, err := s.messageRepo.Conversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	return convs, nil
}

// Thread returns the messages between userID and otherID, oldest first, and marks the
// ones userID received as read
func (s *messageServiceImpl) Thread(ctx context.Context, userID, otherID string) ([]*models.Message, error) {
	if _, err := s.profileRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	read, err := s.messageRepo.MarkThreadRead(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("error marking messages read: %w", err)
	}

	msgs, err := s.messageRepo.Thread(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("error loading thread: %w", err)
	}

	if read > 0 {
		s.publisher.Publish(otherID, websocket.NewEvent(websocket.EventMessagesChanged, map[string]any{"readBy": userID, "count": read}))
	}
	return msgs, nil
}
