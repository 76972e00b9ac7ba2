package models

import (
	"strings"
	"time"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// Profile defines a person on the platform, keyed by the account ID
type Profile struct {
	ID                string      `json:"id" db:"id"`
	FullName          string      `json:"fullName" db:"full_name"`
	Email             string      `json:"email" db:"email"`
	Role              domain.Role `json:"role" db:"role"`
	IsActive          bool        `json:"isActive" db:"is_active"`
	Expertise         *string     `json:"expertise,omitempty" db:"expertise"`
	Interests         *string     `json:"interests,omitempty" db:"interests"`
	Goals             *string     `json:"goals,omitempty" db:"goals"`
	YearsOfExperience *int        `json:"yearsOfExperience,omitempty" db:"years_of_experience"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}

// DisplayName falls back to the email when no name was given.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return p.Email
}

// IsComplete reports whether the role-specific fields have been filled in.
func (p *Profile) IsComplete() bool {
	switch p.Role {
	case domain.RoleMentor:
		return nonBlank(p.Expertise) && p.YearsOfExperience != nil
	case domain.RoleMentee:
		return nonBlank(p.Goals) || nonBlank(p.Interests)
	case domain.RoleAdmin:
		return true
	default:
		return false
	}
}

func nonBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ProfileFilter narrows profile listings. Zero values mean "any".
type ProfileFilter struct {
	Role       domain.Role
	ActiveOnly bool
	ExcludeID  string
}

// ProfileUpdate carries the editable profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	FullName          *string
	Expertise         *string
	Interests         *string
	Goals             *string
	YearsOfExperience *int
}
