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
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

const mentorshipPairKey = "mentorship_requests_pair_key"

// IMentorshipRequestRepository defines mentorship request storage
type IMentorshipRequestRepository interface {
	Create(ctx context.Context, req *models.MentorshipRequest) error
	GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error)
	FindByPair(ctx context.Context, mentorID, menteeID string) (*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id, mentorID string, from, to domain.RelationshipStatus) error
	Reopen(ctx context.Context, id string, message *string) error
	ListForMentor(ctx context.Context, mentorID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error)
	ListForMentee(ctx context.Context, menteeID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error)
	CountByStatus(ctx context.Context, status domain.RelationshipStatus) (int, error)
	ExpirePending(ctx context.Context, pendingSince time.Time) (int64, error)
}

// MentorshipRequestRepository handles mentorship request database operations
type MentorshipRequestRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewMentorshipRequestRepository creates a new MentorshipRequestRepository
func NewMentorshipRequestRepository(q db.Querier) *MentorshipRequestRepository {
	return &MentorshipRequestRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var mentorshipFields = []string{
	"r.id", "r.mentor_id", "r.mentee_id", "r.status", "r.message",
	"r.created_at", "r.updated_at", "r.responded_at",
}

func (r *MentorshipRequestRepository) selectExpanded() squirrel.SelectBuilder {
	cols := append(append(append([]string{}, mentorshipFields...), profileColumns("mentor")...), profileColumns("mentee")...)
	return r.sb.Select(cols...).
		From("mentorship_requests r").
		Join("profiles mentor ON mentor.id = r.mentor_id").
		Join("profiles mentee ON mentee.id = r.mentee_id")
}

func scanMentorshipDest(req *models.MentorshipRequest, status *string) []any {
	return []any{
		&req.ID, &req.MentorID, &req.MenteeID, status, &req.Message,
		&req.CreatedAt, &req.UpdatedAt, &req.RespondedAt,
	}
}

func scanExpandedRequest(row rowScanner) (*models.MentorshipRequest, error) {
	var (
		req            models.MentorshipRequest
		status         string
		mentor, mentee profileRow
	)
	dest := scanMentorshipDest(&req, &status)
	dest = append(dest, mentor.dest()...)
	dest = append(dest, mentee.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	req.Status = parseStatus(status)
	req.Mentor = mentor.profile()
	req.Mentee = mentee.profile()
	return &req, nil
}

// Create inserts a pending mentorship request
func (r *MentorshipRequestRepository) Create(ctx context.Context, req *models.MentorshipRequest) error {
	sql, args, err := r.sb.Insert("mentorship_requests").
		Columns("id", "mentor_id", "mentee_id", "status", "message").
		Values(req.ID, req.MentorID, req.MenteeID, req.Status.String(), req.Message).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create mentorship request query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, mentorshipPairKey) {
			return apperrors.ErrRequestAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("mentorID", req.MentorID).Str("menteeID", req.MenteeID).Msg("Error creating mentorship request")
		return fmt.Errorf("error creating mentorship request: %w", err)
	}
	return nil
}

// GetByID retrieves a request with both profiles
func (r *MentorshipRequestRepository) GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	sql, args, err := r.selectExpanded().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mentorship request query: %w", err)
	}

	req, err := scanExpandedRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Str("requestID", id).Msg("Error scanning mentorship request row")
		return nil, fmt.Errorf("error retrieving mentorship request: %w", err)
	}
	return req, nil
}

// FindByPair returns the request for the pair in any status, or nil when none exists
func (r *MentorshipRequestRepository) FindByPair(ctx context.Context, mentorID, menteeID string) (*models.MentorshipRequest, error) {
	sql, args, err := r.sb.Select(mentorshipFields...).
		From("mentorship_requests r").
		Where("r.mentor_id = ?", mentorID).
		Where("r.mentee_id = ?", menteeID).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find mentorship request query: %w", err)
	}

	var (
		req    models.MentorshipRequest
		status string
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(scanMentorshipDest(&req, &status)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding mentorship request: %w", err)
	}
	req.Status = parseStatus(status)
	return &req, nil
}

// UpdateStatus answers a request. Only the addressed mentor's update of a row still in
// status from takes effect; otherwise ErrStaleStatus is returned.
func (r *MentorshipRequestRepository) UpdateStatus(ctx context.Context, id, mentorID string, from, to domain.RelationshipStatus) error {
	sql, args, err := r.sb.Update("mentorship_requests").
		Set("status", to.String()).
		Set("responded_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("mentor_id = ?", mentorID).
		Where("status = ?", from.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update mentorship request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("requestID", id).Msg("Error updating mentorship request status")
		return fmt.Errorf("error updating mentorship request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaleStatus
	}
	return nil
}

// Reopen resets a declined request to pending with a fresh message
func (r *MentorshipRequestRepository) Reopen(ctx context.Context, id string, message *string) error {
	sql, args, err := r.sb.Update("mentorship_requests").
		Set("status", domain.StatusPending.String()).
		Set("message", message).
		Set("responded_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", domain.StatusDeclined.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reopen mentorship request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("requestID", id).Msg("Error reopening mentorship request")
		return fmt.Errorf("error reopening mentorship request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaleStatus
	}
	return nil
}

// ListForMentor returns requests addressed to mentorID in the given status, newest first
func (r *MentorshipRequestRepository) ListForMentor(ctx context.Context, mentorID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, "r.mentor_id", mentorID, status)
}

// ListForMentee returns requests sent by menteeID in the given status, newest first.
// An empty status matches every status.
func (r *MentorshipRequestRepository) ListForMentee(ctx context.Context, menteeID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, "r.mentee_id", menteeID, status)
}

func (r *MentorshipRequestRepository) list(ctx context.Context, party, partyID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error) {
	where := squirrel.Eq{party: partyID}
	if status != "" {
		where["r.status"] = status.String()
	}

	sql, args, err := r.selectExpanded().Where(where).OrderBy("r.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mentorship requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing mentorship requests")
		return nil, fmt.Errorf("error listing mentorship requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.MentorshipRequest{}
	for rows.Next() {
		req, err := scanExpandedRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mentorship request row: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// CountByStatus counts requests across all users
func (r *MentorshipRequestRepository) CountByStatus(ctx context.Context, status domain.RelationshipStatus) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("mentorship_requests").
		Where(squirrel.Eq{"status": status.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count mentorship requests query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting mentorship requests: %w", err)
	}
	return n, nil
}

// ExpirePending declines requests that have been pending since before the cutoff
func (r *MentorshipRequestRepository) ExpirePending(ctx context.Context, pendingSince time.Time) (int64, error) {
	sql, args, err := r.sb.Update("mentorship_requests").
		Set("status", domain.StatusDeclined.String()).
		Set("responded_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("status = ?", domain.StatusPending.String()).
		Where("updated_at < ?", pendingSince).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build expire mentorship requests query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error expiring mentorship requests: %w", err)
	}
	return tag.RowsAffected(), nil
}
