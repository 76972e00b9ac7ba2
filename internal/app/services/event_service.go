package services

import (
	"context"
	"fmt"
	"strings"
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

// EventService defines the interface for event operations
type EventService interface {
	Create(ctx context.Context, creatorID string, req *dto.EventRequest) (*models.Event, error)
	Update(ctx context.Context, callerID, eventID string, req *dto.EventRequest) (*models.Event, error)
	Delete(ctx context.Context, callerID, eventID string) error
	Upcoming(ctx context.Context) ([]*models.Event, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Event, error)
	Join(ctx context.Context, eventID, userID string) error
	Participants(ctx context.Context, eventID string) ([]*models.Profile, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo    repositories.IEventRepository
	authzService *appAuth.AuthorizationService
	publisher    EventPublisher
	logger       zerolog.Logger
	now          func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repositories.IEventRepository,
	authzService *appAuth.AuthorizationService,
	publisher EventPublisher,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		authzService: authzService,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
		now:          time.Now,
	}
}

func validateEventRequest(req *dto.EventRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", apperrors.NewBadRequestError("Title is required")
	}
	if req.EndDate.Before(req.StartDate) {
		return "", apperrors.NewBadRequestError("Event end date must not be before its start date")
	}
	return title, nil
}

// Create schedules an event. Only mentors and admins organize events.
func (s *eventServiceImpl) Create(ctx context.Context, creatorID string, req *dto.EventRequest) (*models.Event, error) {
	if _, err := s.authzService.RequireRole(ctx, creatorID, domain.RoleMentor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	title, err := validateEventRequest(req)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:          newID(),
		Title:       title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("eventID", event.ID).Str("createdBy", creatorID).Msg("Event created")
	s.publisher.Broadcast(websocket.NewEvent(websocket.EventEventsChanged, dto.NewEventResponse(event)))
	return event, nil
}

// Update replaces an event's details. Creator or admin.
func (s *eventServiceImpl) Update(ctx context.Context, callerID, eventID string, req *dto.EventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzService.CanModify(ctx, callerID, event.CreatedBy); err != nil {
		return nil, err
	}
	title, err := validateEventRequest(req)
	if err != nil {
		return nil, err
	}

	event.Title = title
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.publisher.Broadcast(websocket.NewEvent(websocket.EventEventsChanged, dto.NewEventResponse(event)))
	return event, nil
}

// Delete removes an event. Creator or admin.
func (s *eventServiceImpl) Delete(ctx context.Context, callerID, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.authzService.CanModify(ctx, callerID, event.CreatedBy); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	s.logger.Info().Str("eventID", eventID).Str("deletedBy", callerID).Msg("Event deleted")
	s.publisher.Broadcast(websocket.NewEvent(websocket.EventEventsChanged, map[string]string{"id": eventID}))
	return nil
}

// Upcoming lists events that have not started yet, soonest first
func (s *eventServiceImpl) Upcoming(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming events: %w", err)
	}
	return events, nil
}

// ListByCreator is the organizer's management view
func (s *eventServiceImpl) ListByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	events, err := s.eventRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// Join registers userID as a participant. Joining twice is a conflict.
func (s *eventServiceImpl) Join(ctx context.Context, eventID, userID string) error {
	if _, err := s.authzService.RequireActiveProfile(ctx, userID); err != nil {
		return err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.EndDate.Before(s.now()) {
		return apperrors.NewBadRequestError("This event has already ended")
	}

	participant := &models.EventParticipant{ID: newID(), EventID: eventID, ParticipantID: userID}
	if err := s.eventRepo.AddParticipant(ctx, participant); err != nil {
		return err
	}

	publishTo(s.publisher, websocket.NewEvent(websocket.EventEventsChanged, map[string]string{"id": eventID}), event.CreatedBy, userID)
	return nil
}

// Participants lists the profiles that joined an event
func (s *eventServiceImpl) Participants(ctx context.Context, eventID string) ([]*models.Profile, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	profiles, err := s.eventRepo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	return profiles, nil
}
