package services

import (
	"context"
	"fmt"
	"time"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// MentorshipService defines the interface for mentorship request operations
type MentorshipService interface {
	RequestMentorship(ctx context.Context, menteeID, mentorID string, message *string) (*models.MentorshipRequest, error)
	Respond(ctx context.Context, mentorID, requestID string, status domain.RelationshipStatus) (*models.MentorshipRequest, error)
	PendingForMentor(ctx context.Context, mentorID string) ([]*models.MentorshipRequest, error)
	SentByMentee(ctx context.Context, menteeID string) ([]*models.MentorshipRequest, error)
	AcceptedMentees(ctx context.Context, mentorID string) ([]*models.Profile, error)
	AcceptedMentors(ctx context.Context, menteeID string) ([]*models.Profile, error)
}

// mentorshipServiceImpl implements MentorshipService
type mentorshipServiceImpl struct {
	requestRepo  repositories.IMentorshipRequestRepository
	profileRepo  repositories.IProfileRepository
	transactor   repositories.ITransactor
	authzService *appAuth.AuthorizationService
	policy       domain.RequestPolicy
	publisher    EventPublisher
	logger       zerolog.Logger
	now          func() time.Time
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	requestRepo repositories.IMentorshipRequestRepository,
	profileRepo repositories.IProfileRepository,
	transactor repositories.ITransactor,
	authzService *appAuth.AuthorizationService,
	policy domain.RequestPolicy,
	publisher EventPublisher,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		requestRepo:  requestRepo,
		profileRepo:  profileRepo,
		transactor:   transactor,
		authzService: authzService,
		policy:       policy,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
		now:          time.Now,
	}
}

// RequestMentorship files a pending request from a mentee to an active mentor
func (s *mentorshipServiceImpl) RequestMentorship(ctx context.Context, menteeID, mentorID string, message *string) (*models.MentorshipRequest, error) {
	mentee, err := s.authzService.RequireRole(ctx, menteeID, domain.RoleMentee)
	if err != nil {
		return nil, err
	}

	mentor, err := s.profileRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role != domain.RoleMentor || !mentor.IsActive {
		return nil, apperrors.NewBadRequestError("Selected user is not an available mentor")
	}

	existing, err := s.requestRepo.FindByPair(ctx, mentorID, menteeID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing request: %w", err)
	}

	var req *models.MentorshipRequest
	switch {
	case existing == nil:
		req = &models.MentorshipRequest{
			ID:       newID(),
			MentorID: mentorID,
			MenteeID: menteeID,
			Status:   domain.StatusPending,
			Message:  message,
		}
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return nil, err
		}
	case s.policy.CanReopen(existing.Status):
		if err := s.requestRepo.Reopen(ctx, existing.ID, message); err != nil {
			return nil, err
		}
		req = existing
		req.Status, req.Message, req.RespondedAt = domain.StatusPending, message, nil
	default:
		return nil, apperrors.ErrRequestAlreadyExists
	}
	req.Mentor, req.Mentee = mentor, mentee

	s.logger.Info().Str("requestID", req.ID).Str("mentorID", mentorID).Str("menteeID", menteeID).Msg("Mentorship requested")

	event := websocket.NewEvent(websocket.EventMentorshipRequestCreated, dto.NewMentorshipRequestResponse(req)).
		WithNotification("New Mentorship Request", fmt.Sprintf("%s would like you to be their mentor.", mentee.DisplayName()))
	s.publisher.Publish(mentorID, event)
	return req, nil
}

// Respond accepts or declines a pending request addressed to mentorID. Acceptance
// writes the status change and the welcome message in one transaction.
func (s *mentorshipServiceImpl) Respond(ctx context.Context, mentorID, requestID string, status domain.RelationshipStatus) (*models.MentorshipRequest, error) {
	if _, err := s.authzService.RequireActiveProfile(ctx, mentorID); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorID {
		return nil, apperrors.NewForbiddenError("Only the requested mentor can respond to this request")
	}

	next, err := domain.Transition(req.Status, status)
	if err != nil {
		return nil, err
	}

	var welcome *models.Message
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		if err := repos.MentorshipRequests.UpdateStatus(ctx, req.ID, mentorID, req.Status, next); err != nil {
			return err
		}
		if next != domain.StatusAccepted {
			return nil
		}
		welcome = &models.Message{
			ID:         newID(),
			SenderID:   req.MentorID,
			ReceiverID: req.MenteeID,
			Content:    WelcomeMessage,
		}
		return repos.Messages.Create(ctx, welcome)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStaleStatus) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("requestID", req.ID).Str("status", next.String()).Msg("Failed to update mentorship request")
		return nil, fmt.Errorf("failed to update mentorship request: %w", err)
	}

	respondedAt := s.now()
	req.Status, req.RespondedAt = next, &respondedAt
	s.logger.Info().Str("requestID", req.ID).Str("status", next.String()).Msg("Mentorship request answered")

	payload := dto.NewMentorshipRequestResponse(req)
	s.publisher.Publish(req.MentorID, websocket.NewEvent(websocket.EventMentorshipRequestUpdated, payload).
		WithNotification("Request "+next.String(), "The mentorship request has been "+next.String()+"."))
	s.publisher.Publish(req.MenteeID, websocket.NewEvent(websocket.EventMentorshipRequestUpdated, payload))
	s.publisher.Publish(req.MentorID, websocket.NewEvent(websocket.EventAcceptedMenteesInvalidated, nil))
	if welcome != nil {
		publishTo(s.publisher, websocket.NewEvent(websocket.EventMessagesChanged, dto.NewMessageResponse(welcome)), req.MenteeID, req.MentorID)
	}
	return req, nil
}

// PendingForMentor lists the mentor's inbox with mentee profiles expanded
func (s *mentorshipServiceImpl) PendingForMentor(ctx context.Context, mentorID string) ([]*models.MentorshipRequest, error) {
	reqs, err := s.requestRepo.ListForMentor(ctx, mentorID, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	return reqs, nil
}

// SentByMentee lists every request the mentee has filed, any status
func (s *mentorshipServiceImpl) SentByMentee(ctx context.Context, menteeID string) ([]*models.MentorshipRequest, error) {
	reqs, err := s.requestRepo.ListForMentee(ctx, menteeID, "")
	if err != nil {
		return nil, fmt.Errorf("error listing sent requests: %w", err)
	}
	return reqs, nil
}

// AcceptedMentees is the mentor's roster
func (s *mentorshipServiceImpl) AcceptedMentees(ctx context.Context, mentorID string) ([]*models.Profile, error) {
	reqs, err := s.requestRepo.ListForMentor(ctx, mentorID, domain.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("error listing accepted mentees: %w", err)
	}
	mentees := make([]*models.Profile, 0, len(reqs))
	for _, r := range reqs {
		if r.Mentee != nil {
			mentees = append(mentees, r.Mentee)
		}
	}
	return mentees, nil
}

// AcceptedMentors is the mentee's roster
func (s *mentorshipServiceImpl) AcceptedMentors(ctx context.Context, menteeID string) ([]*models.Profile, error) {
	reqs, err := s.requestRepo.ListForMentee(ctx, menteeID, domain.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("error listing accepted mentors: %w", err)
	}
	mentors := make([]*models.Profile, 0, len(reqs))
	for _, r := range reqs {
		if r.Mentor != nil {
			mentors = append(mentors, r.Mentor)
		}
	}
	return mentors, nil
}
