package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// IProfileRepository defines the interface for profile database operations
type IProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error)
	Update(ctx context.Context, id string, update models.ProfileUpdate) (*models.Profile, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateActive(ctx context.Context, id string, active bool) error
}

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(q db.Querier) *ProfileRepository {
	return &ProfileRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a profile. Its ID must match an existing account.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("id", "full_name", "email", "role", "is_active").
		Values(profile.ID, profile.FullName, profile.Email, roleValue(profile.Role), profile.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("profileID", profile.ID).Msg("Error creating profile")
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns("p")...).
		From("profiles p").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	var row profileRow
	if err := r.db.QueryRow(ctx, sql, args...).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("profileID", id).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return row.profile(), nil
}

// List returns profiles matching filter ordered by name
func (r *ProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	q := r.sb.Select(profileColumns("p")...).From("profiles p")
	if filter.Role.IsSet() {
		q = q.Where(squirrel.Eq{"p.role": filter.Role.String()})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"p.is_active": true})
	}
	if filter.ExcludeID != "" {
		q = q.Where(squirrel.NotEq{"p.id": filter.ExcludeID})
	}

	sql, args, err := q.OrderBy("p.full_name ASC", "p.created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing profiles")
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		var row profileRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, row.profile())
	}
	return profiles, rows.Err()
}

// Update applies the non-nil fields of update and returns the stored profile
func (r *ProfileRepository) Update(ctx context.Context, id string, update models.ProfileUpdate) (*models.Profile, error) {
	set := map[string]any{"updated_at": squirrel.Expr("NOW()")}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Expertise != nil {
		set["expertise"] = *update.Expertise
	}
	if update.Interests != nil {
		set["interests"] = *update.Interests
	}
	if update.Goals != nil {
		set["goals"] = *update.Goals
	}
	if update.YearsOfExperience != nil {
		set["years_of_experience"] = *update.YearsOfExperience
	}

	sql, args, err := r.sb.Update("profiles").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(profileFields, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update profile query: %w", err)
	}

	var row profileRow
	if err := r.db.QueryRow(ctx, sql, args...).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("profileID", id).Msg("Error updating profile")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return row.profile(), nil
}

// UpdateRole sets the canonical role
func (r *ProfileRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.updateColumn(ctx, id, "role", roleValue(role))
}

// UpdateActive enables or disables a profile
func (r *ProfileRepository) UpdateActive(ctx context.Context, id string, active bool) error {
	return r.updateColumn(ctx, id, "is_active", active)
}

func (r *ProfileRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	sql, args, err := r.sb.Update("profiles").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", column, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("profileID", id).Str("column", column).Msg("Error updating profile column")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
