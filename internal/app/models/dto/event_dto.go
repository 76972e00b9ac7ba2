package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// EventRequest creates or replaces an event
type EventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// EventResponse represents an event
type EventResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	CreatedBy        string    `json:"createdBy"`
	ParticipantCount int       `json:"participantCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewEventResponse(e *models.Event) *EventResponse {
	return &EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		CreatedBy:        e.CreatedBy,
		ParticipantCount: e.ParticipantCount,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func NewEventResponses(events []*models.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}
