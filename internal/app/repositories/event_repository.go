package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

const eventParticipantKey = "event_participants_event_participant_key"

// ErrAlreadyJoined is returned when a profile joins the same event twice.
var ErrAlreadyJoined = apperrors.NewConflictError("You have already joined this event")

// IEventRepository defines event storage
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
	ListUpcoming(ctx context.Context, from time.Time) ([]*models.Event, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Event, error)
	AddParticipant(ctx context.Context, participant *models.EventParticipant) error
	ListParticipants(ctx context.Context, eventID string) ([]*models.Profile, error)
}

// EventRepository handles event database operations
type EventRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(q db.Querier) *EventRepository {
	return &EventRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *EventRepository) selectEvents() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.title", "e.description", "e.start_date", "e.end_date", "e.created_by", "e.created_at", "e.updated_at",
		"(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id)",
	).From("events e")
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &e.ParticipantCount); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("id", "title", "description", "start_date", "end_date", "created_by").
		Values(event.ID, event.Title, event.Description, event.StartDate, event.EndDate, event.CreatedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("Event end date must not be before its start date")
		}
		logger.Error().Err(err).Str("createdBy", event.CreatedBy).Msg("Error creating event")
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event with its participant count
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	sql, args, err := r.selectEvents().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return event, nil
}

// Update replaces the editable fields of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("start_date", event.StartDate).
		Set("end_date", event.EndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&event.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEventNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("Event end date must not be before its start date")
		}
		logger.Error().Err(err).Str("eventID", event.ID).Msg("Error updating event")
		return fmt.Errorf("error updating event: %w", err)
	}
	return nil
}

// Delete removes an event and, by cascade, its participants
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", id).Msg("Error deleting event")
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// ListUpcoming returns events starting at or after from, soonest first
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*models.Event, error) {
	return r.list(ctx, r.selectEvents().Where("e.start_date >= ?", from))
}

// ListByCreator returns an organizer's events, soonest first
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	return r.list(ctx, r.selectEvents().Where(squirrel.Eq{"e.created_by": creatorID}))
}

func (r *EventRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := q.OrderBy("e.start_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AddParticipant records that a profile joined an event
func (r *EventRepository) AddParticipant(ctx context.Context, participant *models.EventParticipant) error {
	sql, args, err := r.sb.Insert("event_participants").
		Columns("id", "event_id", "participant_id").
		Values(participant.ID, participant.EventID, participant.ParticipantID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add participant query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&participant.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, eventParticipantKey) {
			return ErrAlreadyJoined
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Str("eventID", participant.EventID).Msg("Error adding event participant")
		return fmt.Errorf("error adding participant: %w", err)
	}
	return nil
}

// ListParticipants returns the profiles that joined an event, in join order
func (r *EventRepository) ListParticipants(ctx context.Context, eventID string) ([]*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns("p")...).
		From("event_participants ep").
		Join("profiles p ON p.id = ep.participant_id").
		Where(squirrel.Eq{"ep.event_id": eventID}).
		OrderBy("ep.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		var row profileRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		profiles = append(profiles, row.profile())
	}
	return profiles, rows.Err()
}
