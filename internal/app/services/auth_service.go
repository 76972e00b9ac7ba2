package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	accountRepo repositories.IAccountRepository
	profileRepo repositories.IProfileRepository
	tokenRepo   repositories.ITokenRepository
	transactor  repositories.ITransactor
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo repositories.IAccountRepository,
	profileRepo repositories.IProfileRepository,
	tokenRepo repositories.ITokenRepository,
	transactor repositories.ITransactor,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		transactor:  transactor,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates an account and its profile in one transaction
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil || !role.CanSelfRegister() {
		return nil, apperrors.NewBadRequestError("Role must be mentor or mentee")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{ID: newID(), Email: email, PasswordHash: hash}
	profile := &models.Profile{
		ID:       account.ID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Role:     role,
		IsActive: true,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return err
		}
		return repos.Profiles.Create(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to register account")
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info().Str("userID", profile.ID).Str("role", role.String()).Msg("Account registered")
	return s.authResponse(ctx, profile)
}

// Login authenticates an email and password pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn().Err(err).Str("userID", account.ID).Msg("Failed to record last login")
	}

	return s.authResponse(ctx, profile)
}

// RefreshToken revokes the presented refresh token and issues a new pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, stored.AccountID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// a concurrent refresh of the same token loses here
	if err := s.tokenRepo.ConsumeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, profile)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

func (s *authServiceImpl) authResponse(ctx context.Context, profile *models.Profile) (*dto.AuthResponse, error) {
	token, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: *token, User: dto.NewProfileResponse(profile)}, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             pair.ExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}, nil
}
