package models

import "time"

// Message is a direct message between two profiles.
type Message struct {
	ID         string     `json:"id" db:"id"`
	SenderID   string     `json:"senderId" db:"sender_id"`
	ReceiverID string     `json:"receiverId" db:"receiver_id"`
	Content    string     `json:"content" db:"content"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	ReadAt     *time.Time `json:"readAt,omitempty" db:"read_at"`
}

// Conversation summarizes the thread with one counterpart.
type Conversation struct {
	Counterpart *Profile
	LastMessage *Message
	UnreadCount int
}
