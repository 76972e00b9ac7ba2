package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// SendMessageRequest posts a direct message
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required,max=5000"`
}

// MessageResponse represents one direct message
type MessageResponse struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"senderId"`
	ReceiverID string     `json:"receiverId"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}

// ConversationResponse is one entry in the contact list
type ConversationResponse struct {
	Counterpart *ProfileResponse `json:"counterpart"`
	LastMessage *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount int              `json:"unreadCount"`
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		ReadAt:     m.ReadAt,
	}
}

func NewMessageResponses(msgs []*models.Message) []*MessageResponse {
	out := make([]*MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

func NewConversationResponses(convs []*models.Conversation) []*ConversationResponse {
	out := make([]*ConversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, &ConversationResponse{
			Counterpart: NewProfileResponse(c.Counterpart),
			LastMessage: NewMessageResponse(c.LastMessage),
			UnreadCount: c.UnreadCount,
		})
	}
	return out
}
