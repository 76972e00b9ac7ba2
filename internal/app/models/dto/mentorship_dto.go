package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// CreateMentorshipRequest is sent by a mentee to a mentor
type CreateMentorshipRequest struct {
	MentorID string  `json:"mentorId" binding:"required" example:"t1"`
	Message  *string `json:"message" binding:"omitempty,max=1000" example:"I'd love help preparing for system design interviews."`
}

// MentorshipRequestResponse represents a mentorship request with the counterpart expanded
type MentorshipRequestResponse struct {
	ID          string           `json:"id"`
	MentorID    string           `json:"mentorId"`
	MenteeID    string           `json:"menteeId"`
	Status      string           `json:"status" enums:"pending,accepted,declined"`
	Message     *string          `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`
	Mentor      *ProfileResponse `json:"mentor,omitempty"`
	Mentee      *ProfileResponse `json:"mentee,omitempty"`
}

func NewMentorshipRequestResponse(r *models.MentorshipRequest) *MentorshipRequestResponse {
	return &MentorshipRequestResponse{
		ID:          r.ID,
		MentorID:    r.MentorID,
		MenteeID:    r.MenteeID,
		Status:      r.Status.String(),
		Message:     r.Message,
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
		Mentor:      NewProfileResponse(r.Mentor),
		Mentee:      NewProfileResponse(r.Mentee),
	}
}

func NewMentorshipRequestResponses(reqs []*models.MentorshipRequest) []*MentorshipRequestResponse {
	out := make([]*MentorshipRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewMentorshipRequestResponse(r))
	}
	return out
}
