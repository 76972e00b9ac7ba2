package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
)

// CreateConnectionRequest asks another user to connect
type CreateConnectionRequest struct {
	UserID string `json:"userId" binding:"required" example:"t1"`
}

// RespondRequest answers a pending connection or mentorship request
type RespondRequest struct {
	Status string `json:"status" binding:"required,relanswer" enums:"accepted,declined"`
}

// ConnectionResponse is one connection seen from the caller's side
type ConnectionResponse struct {
	ID          string           `json:"id"`
	Status      string           `json:"status" enums:"pending,accepted,declined"`
	RequesterID string           `json:"requesterId"`
	AddresseeID string           `json:"addresseeId"`
	Counterpart *ProfileResponse `json:"counterpart,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ConnectionListResponse splits connections into incoming requests and active links
type ConnectionListResponse struct {
	Requests []*ConnectionResponse `json:"requests"`
	Active   []*ConnectionResponse `json:"active"`
}

// VisibleConnectionsResponse is the role-conditioned list with its heading
type VisibleConnectionsResponse struct {
	Title    string             `json:"title" example:"My Mentees"`
	Profiles []*ProfileResponse `json:"profiles"`
}

// AvailableUserResponse is a connect candidate
type AvailableUserResponse struct {
	Profile         *ProfileResponse `json:"profile"`
	ConnectDisabled bool             `json:"connectDisabled"`
}

// NewConnectionResponse renders c from viewerID's point of view
func NewConnectionResponse(c *models.Connection, viewerID string) *ConnectionResponse {
	return &ConnectionResponse{
		ID:          c.ID,
		Status:      c.Status.String(),
		RequesterID: c.UserID1,
		AddresseeID: c.UserID2,
		Counterpart: NewProfileResponse(c.Counterpart(viewerID)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewConnectionListResponse keeps pending requests addressed to the viewer apart from accepted links.
// Requests the viewer sent and declined rows are omitted.
func NewConnectionListResponse(conns []*models.Connection, viewerID string) *ConnectionListResponse {
	resp := &ConnectionListResponse{
		Requests: []*ConnectionResponse{},
		Active:   []*ConnectionResponse{},
	}
	for _, c := range conns {
		switch {
		case c.IsRequestFor(viewerID):
			resp.Requests = append(resp.Requests, NewConnectionResponse(c, viewerID))
		case c.Status == domain.StatusAccepted:
			resp.Active = append(resp.Active, NewConnectionResponse(c, viewerID))
		}
	}
	return resp
}

// NewVisibleConnectionsResponse maps the visible projection
func NewVisibleConnectionsResponse(v *models.VisibleConnections) *VisibleConnectionsResponse {
	return &VisibleConnectionsResponse{
		Title:    v.Title,
		Profiles: NewProfileResponses(v.Profiles),
	}
}

// NewAvailableUserResponses maps connect candidates
func NewAvailableUserResponses(users []*models.AvailableUser) []*AvailableUserResponse {
	out := make([]*AvailableUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, &AvailableUserResponse{
			Profile:         NewProfileResponse(u.Profile),
			ConnectDisabled: u.ConnectDisabled,
		})
	}
	return out
}
