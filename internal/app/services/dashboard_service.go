package services

import (
	"context"
	"fmt"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
)

// DashboardService defines the interface for the role-selected landing view
type DashboardService interface {
	ForUser(ctx context.Context, userID string) (*models.Dashboard, error)
	ForProfile(ctx context.Context, profile *models.Profile) (*models.Dashboard, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	profileRepo       repositories.IProfileRepository
	requestRepo       repositories.IMentorshipRequestRepository
	mentorshipService MentorshipService
	taskService       TaskService
	eventService      EventService
	authzService      *appAuth.AuthorizationService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	profileRepo repositories.IProfileRepository,
	requestRepo repositories.IMentorshipRequestRepository,
	mentorshipService MentorshipService,
	taskService TaskService,
	eventService EventService,
	authzService *appAuth.AuthorizationService,
) DashboardService {
	return &dashboardServiceImpl{
		profileRepo:       profileRepo,
		requestRepo:       requestRepo,
		mentorshipService: mentorshipService,
		taskService:       taskService,
		eventService:      eventService,
		authzService:      authzService,
	}
}

func (s *dashboardServiceImpl) ForUser(ctx context.Context, userID string) (*models.Dashboard, error) {
	profile, err := s.authzService.RequireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ForProfile(ctx, profile)
}

// ForProfile composes the view for the profile's role. Profiles without a
// recognized role get the mentee view.
func (s *dashboardServiceImpl) ForProfile(ctx context.Context, profile *models.Profile) (*models.Dashboard, error) {
	switch profile.Role.DashboardRole() {
	case domain.RoleAdmin:
		return s.admin(ctx)
	case domain.RoleMentor:
		return s.mentor(ctx, profile.ID)
	default:
		return s.mentee(ctx, profile.ID)
	}
}

func (s *dashboardServiceImpl) admin(ctx context.Context) (*models.Dashboard, error) {
	users, err := s.profileRepo.List(ctx, models.ProfileFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	stats := &models.AdminStats{}
	for _, u := range users {
		switch u.Role {
		case domain.RoleMentor:
			stats.Mentors++
		case domain.RoleMentee:
			stats.Mentees++
		}
	}
	if stats.ActiveSessions, err = s.requestRepo.CountByStatus(ctx, domain.StatusAccepted); err != nil {
		return nil, fmt.Errorf("error counting accepted requests: %w", err)
	}
	if stats.PendingRequests, err = s.requestRepo.CountByStatus(ctx, domain.StatusPending); err != nil {
		return nil, fmt.Errorf("error counting pending requests: %w", err)
	}

	return &models.Dashboard{Role: domain.RoleAdmin, Users: users, Stats: stats}, nil
}

func (s *dashboardServiceImpl) mentor(ctx context.Context, mentorID string) (*models.Dashboard, error) {
	mentees, err := s.mentorshipService.AcceptedMentees(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventService.ListByCreator(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	pending, err := s.mentorshipService.PendingForMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Role:            domain.RoleMentor,
		Mentees:         mentees,
		MyEvents:        events,
		PendingRequests: pending,
	}, nil
}

func (s *dashboardServiceImpl) mentee(ctx context.Context, menteeID string) (*models.Dashboard, error) {
	available, err := s.profileRepo.List(ctx, models.ProfileFilter{Role: domain.RoleMentor, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("error listing mentors: %w", err)
	}
	tasks, err := s.taskService.ListAssigned(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	mentors, err := s.mentorshipService.AcceptedMentors(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.eventService.Upcoming(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Role:             domain.RoleMentee,
		AvailableMentors: available,
		Tasks:            tasks,
		Mentors:          mentors,
		UpcomingEvents:   upcoming,
	}, nil
}
