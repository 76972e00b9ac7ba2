package services

import (
	"context"
	"fmt"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// Titles of the role-conditioned connection list
const (
	TitleMyMentees     = "My Mentees"
	TitleMyMentors     = "My Mentors"
	TitleMyConnections = "My Connections"
)

// ConnectionService defines the interface for peer connection operations
type ConnectionService interface {
	Create(ctx context.Context, requesterID, targetID string) (*models.Connection, error)
	Respond(ctx context.Context, callerID, connectionID string, status domain.RelationshipStatus) (*models.Connection, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Connection, error)
	Visible(ctx context.Context, viewerID string) (*models.VisibleConnections, error)
	Available(ctx context.Context, viewerID string) ([]*models.AvailableUser, error)
}

// connectionServiceImpl implements ConnectionService
type connectionServiceImpl struct {
	connectionRepo repositories.IConnectionRepository
	profileRepo    repositories.IProfileRepository
	authzService   *appAuth.AuthorizationService
	policy         domain.RequestPolicy
	publisher      EventPublisher
	logger         zerolog.Logger
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	connectionRepo repositories.IConnectionRepository,
	profileRepo repositories.IProfileRepository,
	authzService *appAuth.AuthorizationService,
	policy domain.RequestPolicy,
	publisher EventPublisher,
	logger zerolog.Logger,
) ConnectionService {
	return &connectionServiceImpl{
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
		authzService:   authzService,
		policy:         policy,
		publisher:      publisherOrNop(publisher),
		logger:         logger,
	}
}

// Create sends a connection request from requesterID to targetID. Any row already on
// record for the pair blocks the request unless the policy reopens a declined one.
func (s *connectionServiceImpl) Create(ctx context.Context, requesterID, targetID string) (*models.Connection, error) {
	if requesterID == targetID {
		return nil, apperrors.NewBadRequestError("You cannot connect with yourself")
	}
	if _, err := s.authzService.RequireActiveProfile(ctx, requesterID); err != nil {
		return nil, err
	}

	target, err := s.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, apperrors.NewBadRequestError("This user is not accepting connections")
	}

	existing, err := s.connectionRepo.FindBetween(ctx, requesterID, targetID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing connection: %w", err)
	}

	var conn *models.Connection
	switch {
	case existing == nil:
		conn = &models.Connection{
			ID:      newID(),
			UserID1: requesterID,
			UserID2: targetID,
			Status:  domain.StatusPending,
		}
		if err := s.connectionRepo.Create(ctx, conn); err != nil {
			return nil, err
		}
	case s.policy.CanReopen(existing.Status):
		if err := s.connectionRepo.Reopen(ctx, existing.ID, requesterID, targetID); err != nil {
			return nil, err
		}
		conn = existing
		conn.UserID1, conn.UserID2, conn.Status = requesterID, targetID, domain.StatusPending
	default:
		return nil, apperrors.ErrConnectionAlreadyExists
	}

	s.logger.Info().Str("connectionID", conn.ID).Str("requesterID", requesterID).Str("targetID", targetID).Msg("Connection requested")
	s.notify(conn)
	return conn, nil
}

// Respond accepts or declines a pending connection. Only the addressee may answer.
func (s *connectionServiceImpl) Respond(ctx context.Context, callerID, connectionID string, status domain.RelationshipStatus) (*models.Connection, error) {
	if _, err := s.authzService.RequireActiveProfile(ctx, callerID); err != nil {
		return nil, err
	}

	conn, err := s.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.UserID2 != callerID {
		return nil, apperrors.NewForbiddenError("Only the addressee can respond to this connection request")
	}

	next, err := domain.Transition(conn.Status, status)
	if err != nil {
		return nil, err
	}
	if err := s.connectionRepo.UpdateStatus(ctx, conn.ID, callerID, conn.Status, next); err != nil {
		return nil, err
	}
	conn.Status = next

	s.logger.Info().Str("connectionID", conn.ID).Str("status", next.String()).Msg("Connection answered")
	s.notify(conn)
	return conn, nil
}

// ListForUser returns every connection involving userID with both profiles expanded
func (s *connectionServiceImpl) ListForUser(ctx context.Context, userID string) ([]*models.Connection, error) {
	conns, err := s.connectionRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing connections: %w", err)
	}
	return conns, nil
}

// Visible projects the viewer's accepted connections by role: mentors see their mentees,
// mentees see their mentors, everyone else sees all accepted counterparts.
func (s *connectionServiceImpl) Visible(ctx context.Context, viewerID string) (*models.VisibleConnections, error) {
	viewer, err := s.authzService.RequireActiveProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	conns, err := s.connectionRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing connections: %w", err)
	}

	title, want := TitleMyConnections, domain.RoleUnset
	switch viewer.Role {
	case domain.RoleMentor:
		title, want = TitleMyMentees, domain.RoleMentee
	case domain.RoleMentee:
		title, want = TitleMyMentors, domain.RoleMentor
	}

	visible := &models.VisibleConnections{Title: title, Profiles: []*models.Profile{}}
	for _, c := range conns {
		if c.Status != domain.StatusAccepted {
			continue
		}
		counterpart := c.Counterpart(viewerID)
		if counterpart == nil {
			continue
		}
		if want.IsSet() && counterpart.Role != want {
			continue
		}
		visible.Profiles = append(visible.Profiles, counterpart)
	}
	return visible, nil
}

// Available lists active profiles the viewer could connect with. Accepted counterparts
// are excluded; anyone with a pending row in either direction is listed as disabled.
func (s *connectionServiceImpl) Available(ctx context.Context, viewerID string) ([]*models.AvailableUser, error) {
	if _, err := s.authzService.RequireActiveProfile(ctx, viewerID); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx, models.ProfileFilter{ActiveOnly: true, ExcludeID: viewerID})
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	conns, err := s.connectionRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing connections: %w", err)
	}

	statusWith := make(map[string]domain.RelationshipStatus, len(conns))
	for _, c := range conns {
		statusWith[c.CounterpartID(viewerID)] = c.Status
	}

	available := make([]*models.AvailableUser, 0, len(profiles))
	for _, p := range profiles {
		status, known := statusWith[p.ID]
		if known && status == domain.StatusAccepted {
			continue
		}
		available = append(available, &models.AvailableUser{
			Profile:         p,
			ConnectDisabled: known && status == domain.StatusPending,
		})
	}
	return available, nil
}

func (s *connectionServiceImpl) notify(conn *models.Connection) {
	event := websocket.NewEvent(websocket.EventConnectionsChanged, dto.NewConnectionResponse(conn, conn.UserID2))
	publishTo(s.publisher, event, conn.UserID1, conn.UserID2)
}
