package models

import "time"

// Event is a scheduled session published by a mentor or admin.
type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	// ParticipantCount is filled by listing queries only.
	ParticipantCount int `json:"participantCount" db:"-"`
}

// EventParticipant records that a profile joined an event.
type EventParticipant struct {
	ID            string    `json:"id" db:"id"`
	EventID       string    `json:"eventId" db:"event_id"`
	ParticipantID string    `json:"participantId" db:"participant_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
