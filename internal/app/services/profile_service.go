package services

import (
	"context"
	"fmt"
	"strings"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetCurrent(ctx context.Context, userID string) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error)
	Complete(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
	ChangeRole(ctx context.Context, adminID, profileID string, role domain.Role) (*models.Profile, error)
	SetActive(ctx context.Context, adminID, profileID string, active bool) (*models.Profile, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo  repositories.IProfileRepository
	authzService *appAuth.AuthorizationService
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo repositories.IProfileRepository,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		profileRepo:  profileRepo,
		authzService: authzService,
		logger:       logger,
	}
}

func (s *profileServiceImpl) GetCurrent(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *profileServiceImpl) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *profileServiceImpl) List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return profiles, nil
}

// Complete applies the caller's own profile form. The merged result must satisfy
// the role's required fields.
func (s *profileServiceImpl) Complete(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	current, err := s.authzService.RequireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		trimmed := strings.TrimSpace(*update.FullName)
		if trimmed == "" {
			return nil, apperrors.NewBadRequestError("Full name cannot be empty")
		}
		update.FullName = &trimmed
	}
	if update.YearsOfExperience != nil && *update.YearsOfExperience < 0 {
		return nil, apperrors.NewBadRequestError("Years of experience cannot be negative")
	}

	merged := mergeProfile(*current, update)
	switch merged.Role {
	case domain.RoleMentor:
		if !merged.IsComplete() {
			return nil, apperrors.NewBadRequestError("Mentors must provide expertise and years of experience")
		}
	case domain.RoleMentee:
		if !merged.IsComplete() {
			return nil, apperrors.NewBadRequestError("Mentees must provide goals or interests")
		}
	}

	profile, err := s.profileRepo.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("userID", userID).Msg("Profile completed")
	return profile, nil
}

// ChangeRole sets another profile's role. Admin only.
func (s *profileServiceImpl) ChangeRole(ctx context.Context, adminID, profileID string, role domain.Role) (*models.Profile, error) {
	if _, err := s.authzService.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if !role.IsSet() {
		return nil, domain.ErrInvalidRole
	}
	if adminID == profileID && role != domain.RoleAdmin {
		return nil, apperrors.NewBadRequestError("You cannot remove your own admin role")
	}

	if err := s.profileRepo.UpdateRole(ctx, profileID, role); err != nil {
		return nil, err
	}
	s.logger.Info().Str("adminID", adminID).Str("profileID", profileID).Str("role", role.String()).Msg("Profile role changed")
	return s.profileRepo.GetByID(ctx, profileID)
}

// SetActive enables or disables another profile. Admin only; there is no hard delete.
func (s *profileServiceImpl) SetActive(ctx context.Context, adminID, profileID string, active bool) (*models.Profile, error) {
	if _, err := s.authzService.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if adminID == profileID && !active {
		return nil, apperrors.NewBadRequestError("You cannot deactivate your own account")
	}

	if err := s.profileRepo.UpdateActive(ctx, profileID, active); err != nil {
		return nil, err
	}
	s.logger.Info().Str("adminID", adminID).Str("profileID", profileID).Bool("active", active).Msg("Profile activation changed")
	return s.profileRepo.GetByID(ctx, profileID)
}

func mergeProfile(p models.Profile, u models.ProfileUpdate) models.Profile {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Expertise != nil {
		p.Expertise = u.Expertise
	}
	if u.Interests != nil {
		p.Interests = u.Interests
	}
	if u.Goals != nil {
		p.Goals = u.Goals
	}
	if u.YearsOfExperience != nil {
		p.YearsOfExperience = u.YearsOfExperience
	}
	return p
}
