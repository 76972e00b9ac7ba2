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

// connectionsPairKey is the unique index on the unordered user pair.
const connectionsPairKey = "connections_pair_key"

// IConnectionRepository defines connection storage
type IConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id string) (*models.Connection, error)
	FindBetween(ctx context.Context, userA, userB string) (*models.Connection, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Connection, error)
	UpdateStatus(ctx context.Context, id, responderID string, from, to domain.RelationshipStatus) error
	Reopen(ctx context.Context, id, requesterID, targetID string) error
	ExpirePending(ctx context.Context, pendingSince time.Time) (int64, error)
}

// ConnectionRepository handles connection database operations
type ConnectionRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(q db.Querier) *ConnectionRepository {
	return &ConnectionRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var connectionFields = []string{"c.id", "c.user_id1", "c.user_id2", "c.status", "c.created_at", "c.updated_at"}

func (r *ConnectionRepository) selectExpanded() squirrel.SelectBuilder {
	cols := append(append(append([]string{}, connectionFields...), profileColumns("p1")...), profileColumns("p2")...)
	return r.sb.Select(cols...).
		From("connections c").
		Join("profiles p1 ON p1.id = c.user_id1").
		Join("profiles p2 ON p2.id = c.user_id2")
}

func scanExpandedConnection(row rowScanner) (*models.Connection, error) {
	var (
		c      models.Connection
		status string
		u1, u2 profileRow
	)
	dest := []any{&c.ID, &c.UserID1, &c.UserID2, &status, &c.CreatedAt, &c.UpdatedAt}
	dest = append(dest, u1.dest()...)
	dest = append(dest, u2.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	c.Status = parseStatus(status)
	c.User1 = u1.profile()
	c.User2 = u2.profile()
	return &c, nil
}

// Create inserts a pending connection from UserID1 to UserID2
func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	sql, args, err := r.sb.Insert("connections").
		Columns("id", "user_id1", "user_id2", "status").
		Values(conn.ID, conn.UserID1, conn.UserID2, conn.Status.String()).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create connection query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&conn.CreatedAt, &conn.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, connectionsPairKey) {
			return apperrors.ErrConnectionAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID1", conn.UserID1).Str("userID2", conn.UserID2).Msg("Error creating connection")
		return fmt.Errorf("error creating connection: %w", err)
	}
	return nil
}

// GetByID retrieves a connection with both profiles
func (r *ConnectionRepository) GetByID(ctx context.Context, id string) (*models.Connection, error) {
	sql, args, err := r.selectExpanded().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get connection query: %w", err)
	}

	conn, err := scanExpandedConnection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConnectionNotFound
		}
		logger.Error().Err(err).Str("connectionID", id).Msg("Error scanning connection row")
		return nil, fmt.Errorf("error retrieving connection: %w", err)
	}
	return conn, nil
}

// FindBetween returns the row for the unordered pair in any status, or nil when none exists.
func (r *ConnectionRepository) FindBetween(ctx context.Context, userA, userB string) (*models.Connection, error) {
	sql, args, err := r.sb.Select("id", "user_id1", "user_id2", "status", "created_at", "updated_at").
		From("connections").
		Where("LEAST(user_id1, user_id2) = LEAST(?::text, ?::text)", userA, userB).
		Where("GREATEST(user_id1, user_id2) = GREATEST(?::text, ?::text)", userA, userB).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find connection query: %w", err)
	}

	var (
		c      models.Connection
		status string
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.UserID1, &c.UserID2, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding connection: %w", err)
	}
	c.Status = parseStatus(status)
	return &c, nil
}

// ListForUser returns every connection involving userID, newest first
func (r *ConnectionRepository) ListForUser(ctx context.Context, userID string) ([]*models.Connection, error) {
	sql, args, err := r.selectExpanded().
		Where(squirrel.Or{squirrel.Eq{"c.user_id1": userID}, squirrel.Eq{"c.user_id2": userID}}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list connections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error listing connections")
		return nil, fmt.Errorf("error listing connections: %w", err)
	}
	defer rows.Close()

	conns := []*models.Connection{}
	for rows.Next() {
		c, err := scanExpandedConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning connection row: %w", err)
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// UpdateStatus answers a connection. The row must still be in status from and addressed
// to responderID; otherwise ErrStaleStatus is returned.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id, responderID string, from, to domain.RelationshipStatus) error {
	sql, args, err := r.sb.Update("connections").
		Set("status", to.String()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("user_id2 = ?", responderID).
		Where("status = ?", from.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update connection query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("connectionID", id).Msg("Error updating connection status")
		return fmt.Errorf("error updating connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaleStatus
	}
	return nil
}

// Reopen turns a declined row back into a pending request from requesterID to targetID.
func (r *ConnectionRepository) Reopen(ctx context.Context, id, requesterID, targetID string) error {
	sql, args, err := r.sb.Update("connections").
		Set("user_id1", requesterID).
		Set("user_id2", targetID).
		Set("status", domain.StatusPending.String()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", domain.StatusDeclined.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reopen connection query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("connectionID", id).Msg("Error reopening connection")
		return fmt.Errorf("error reopening connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaleStatus
	}
	return nil
}

// ExpirePending declines connections that have been pending since before the cutoff
func (r *ConnectionRepository) ExpirePending(ctx context.Context, pendingSince time.Time) (int64, error) {
	sql, args, err := r.sb.Update("connections").
		Set("status", domain.StatusDeclined.String()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("status = ?", domain.StatusPending.String()).
		Where("updated_at < ?", pendingSince).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build expire connections query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error expiring connections: %w", err)
	}
	return tag.RowsAffected(), nil
}
