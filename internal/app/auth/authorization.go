package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// ProfileGetter is the profile lookup authorization depends on.
type ProfileGetter interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// AuthorizationService resolves the caller's stored profile and checks what it may do.
// Roles always come from storage, never from token claims.
type AuthorizationService struct {
	profiles ProfileGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(profiles ProfileGetter) *AuthorizationService {
	return &AuthorizationService{profiles: profiles}
}

// RequireActiveProfile loads the caller's profile and rejects deactivated accounts
func (s *AuthorizationService) RequireActiveProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error loading profile for authorization")
		return nil, fmt.Errorf("error loading caller profile: %w", err)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return profile, nil
}

// RequireRole returns the caller's profile when it holds one of roles
func (s *AuthorizationService) RequireRole(ctx context.Context, userID string, roles ...domain.Role) (*models.Profile, error) {
	profile, err := s.RequireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if profile.Role == r {
			return profile, nil
		}
	}
	return nil, apperrors.NewForbiddenError(fmt.Sprintf("This action requires the %s role", rolesText(roles)))
}

// RequireAdmin is RequireRole for admins only
func (s *AuthorizationService) RequireAdmin(ctx context.Context, userID string) (*models.Profile, error) {
	return s.RequireRole(ctx, userID, domain.RoleAdmin)
}

// CanModify allows the owner of a resource and admins
func (s *AuthorizationService) CanModify(ctx context.Context, userID, ownerID string) (*models.Profile, error) {
	profile, err := s.RequireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ID != ownerID && profile.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbiddenError("You can only modify your own content")
	}
	return profile, nil
}

func rolesText(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, " or ")
}
