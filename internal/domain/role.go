package domain

import (
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// Role is the single canonical role stored on a profile.
type Role string

const (
	RoleUnset  Role = ""
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

var ErrInvalidRole = apperrors.NewBadRequestError("role must be one of admin, mentor, mentee")

// ParseRole normalizes a stored or submitted role. An empty string yields RoleUnset.
func ParseRole(s string) (Role, error) {
	switch role := Role(strings.ToLower(strings.TrimSpace(s))); role {
	case RoleUnset, RoleAdmin, RoleMentor, RoleMentee:
		return role, nil
	default:
		return RoleUnset, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// NormalizeRole is ParseRole without the error: unknown values become RoleUnset.
func NormalizeRole(s string) Role {
	role, err := ParseRole(s)
	if err != nil {
		return RoleUnset
	}
	return role
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsSet() bool {
	return r != RoleUnset
}

// CanSelfRegister reports whether the role may be chosen at sign-up.
func (r Role) CanSelfRegister() bool {
	return r == RoleMentor || r == RoleMentee
}

// CanOrganize reports whether the role may assign tasks and publish events.
func (r Role) CanOrganize() bool {
	return r == RoleMentor || r == RoleAdmin
}

// DashboardRole picks the dashboard a profile sees. Unset and unknown roles see the mentee dashboard.
func (r Role) DashboardRole() Role {
	switch r {
	case RoleAdmin, RoleMentor:
		return r
	default:
		return RoleMentee
	}
}
