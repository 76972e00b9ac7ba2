package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// ProfileResponse is the public view of a profile
type ProfileResponse struct {
	ID                string    `json:"id" example:"8f14e45f-ea9c-4b1e-9e2a-0f2c1c0b7a11"`
	FullName          string    `json:"fullName" example:"Ada Lovelace"`
	Email             string    `json:"email" example:"ada@example.com"`
	Role              string    `json:"role" example:"mentor" enums:"admin,mentor,mentee,"`
	IsActive          bool      `json:"isActive" example:"true"`
	Expertise         *string   `json:"expertise,omitempty" example:"Backend engineering"`
	Interests         *string   `json:"interests,omitempty"`
	Goals             *string   `json:"goals,omitempty"`
	YearsOfExperience *int      `json:"yearsOfExperience,omitempty" example:"7"`
	ProfileComplete   bool      `json:"profileComplete"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CompleteProfileRequest fills the role-specific fields after sign-up
type CompleteProfileRequest struct {
	FullName          *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Expertise         *string `json:"expertise" binding:"omitempty,max=500"`
	Interests         *string `json:"interests" binding:"omitempty,max=500"`
	Goals             *string `json:"goals" binding:"omitempty,max=1000"`
	YearsOfExperience *int    `json:"yearsOfExperience" binding:"omitempty,min=0,max=80"`
}

// ToUpdate converts the request to the service input
func (r *CompleteProfileRequest) ToUpdate() models.ProfileUpdate {
	return models.ProfileUpdate{
		FullName:          r.FullName,
		Expertise:         r.Expertise,
		Interests:         r.Interests,
		Goals:             r.Goals,
		YearsOfExperience: r.YearsOfExperience,
	}
}

// ChangeRoleRequest is an admin action
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,role" enums:"admin,mentor,mentee"`
}

// SetActiveRequest is an admin action
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// NewProfileResponse maps a profile model; nil in, nil out
func NewProfileResponse(p *models.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:                p.ID,
		FullName:          p.FullName,
		Email:             p.Email,
		Role:              p.Role.String(),
		IsActive:          p.IsActive,
		Expertise:         p.Expertise,
		Interests:         p.Interests,
		Goals:             p.Goals,
		YearsOfExperience: p.YearsOfExperience,
		ProfileComplete:   p.IsComplete(),
		CreatedAt:         p.CreatedAt,
	}
}

// NewProfileResponses maps a list, never returning nil
func NewProfileResponses(profiles []*models.Profile) []*ProfileResponse {
	out := make([]*ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
