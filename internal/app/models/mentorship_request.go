package models

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// MentorshipRequest is a directed request from a mentee to a mentor.
type MentorshipRequest struct {
	ID          string                    `json:"id" db:"id"`
	MentorID    string                    `json:"mentorId" db:"mentor_id"`
	MenteeID    string                    `json:"menteeId" db:"mentee_id"`
	Status      domain.RelationshipStatus `json:"status" db:"status"`
	Message     *string                   `json:"message,omitempty" db:"message"`
	CreatedAt   time.Time                 `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time                 `json:"updatedAt" db:"updated_at"`
	RespondedAt *time.Time                `json:"respondedAt,omitempty" db:"responded_at"`
	Mentor      *Profile                  `json:"mentor,omitempty"`
	Mentee      *Profile                  `json:"mentee,omitempty"`
}
