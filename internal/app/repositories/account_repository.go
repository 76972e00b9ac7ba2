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
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

const accountsEmailKey = "accounts_email_key"

// IAccountRepository defines the interface for credential storage
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// AccountRepository handles account database operations
type AccountRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(q db.Querier) *AccountRepository {
	return &AccountRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an account. Emails are stored lowercased.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	sql, args, err := r.sb.Insert("accounts").
		Columns("id", "email", "password_hash").
		Values(account.ID, account.Email, account.PasswordHash).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&account.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, accountsEmailKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error creating account")
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByEmail looks an account up by its normalized email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "last_login_at", "created_at").
		From("accounts").
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	var a models.Account
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.LastLoginAt, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}
	return &a, nil
}

// EmailExists reports whether an account already uses email
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("accounts").
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateLastLogin stamps a successful login
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id string) error {
	sql, args, err := r.sb.Update("accounts").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("accountID", id).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}
