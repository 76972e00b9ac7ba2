// Package seed creates the data a fresh install needs to be usable.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	appModels "github.com/mentorhub/mentorhub/internal/app/models"
	appRepos "github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/config"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// EmailChecker is the part of the account repository the seeder reads.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CreateDefaultAdmin creates the configured admin account and profile if the
// email is not taken yet. Nothing happens when no admin email is configured.
func CreateDefaultAdmin(
	ctx context.Context,
	accounts EmailChecker,
	transactor appRepos.ITransactor,
	cfg config.SeedConfig,
	lgr zerolog.Logger,
) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	exists, err := accounts.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking if admin exists: %w", err)
	}
	if exists {
		lgr.Info().Str("email", email).Msg("Admin user already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	id := uuid.NewString()
	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Administrator"
	}

	err = transactor.WithinTransaction(ctx, func(ctx context.Context, repos *appRepos.TxRepositories) error {
		if err := repos.Accounts.Create(ctx, &appModels.Account{ID: id, Email: email, PasswordHash: hash}); err != nil {
			return err
		}
		return repos.Profiles.Create(ctx, &appModels.Profile{
			ID:       id,
			FullName: name,
			Email:    email,
			Role:     domain.RoleAdmin,
			IsActive: true,
		})
	})
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		// Another instance won the race
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}

	lgr.Info().Str("adminID", id).Str("email", email).Msg("Default admin user created successfully")
	return nil
}
