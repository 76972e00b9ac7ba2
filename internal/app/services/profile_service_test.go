package services

import (
	"context"
	"testing"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProfileComplete(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	_, err := env.profiles.Complete(ctx, "m1", models.ProfileUpdate{Expertise: strPtr("Go")})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = env.profiles.Complete(ctx, "m1", models.ProfileUpdate{Expertise: strPtr("Go"), YearsOfExperience: intPtr(-1)})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	mentor, err := env.profiles.Complete(ctx, "m1", models.ProfileUpdate{
		FullName:          strPtr("  Grace Hopper "),
		Expertise:         strPtr("Compilers"),
		YearsOfExperience: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", mentor.FullName)
	assert.True(t, mentor.IsComplete())

	_, err = env.profiles.Complete(ctx, "t1", models.ProfileUpdate{Goals: strPtr(" ")})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	mentee, err := env.profiles.Complete(ctx, "t1", models.ProfileUpdate{Interests: strPtr("databases")})
	require.NoError(t, err)
	assert.True(t, mentee.IsComplete())
}

func TestProfileAdminChanges(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	_, err := env.profiles.ChangeRole(ctx, "m1", "t1", domain.RoleMentor)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.profiles.ChangeRole(ctx, "a1", "a1", domain.RoleMentee)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	promoted, err := env.profiles.ChangeRole(ctx, "a1", "t2", domain.RoleMentor)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMentor, promoted.Role)

	_, err = env.profiles.SetActive(ctx, "a1", "a1", false)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	disabled, err := env.profiles.SetActive(ctx, "a1", "t1", false)
	require.NoError(t, err)
	assert.False(t, disabled.IsActive)

	// a disabled mentee can no longer act
	_, err = env.mentorship.RequestMentorship(ctx, "t1", "m1", nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestAuthRegisterLoginRefresh(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "root@example.com", Password: "s3cretpass1", FullName: "Root", Role: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	registered, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: " Ada@Example.com ", Password: "s3cretpass1", FullName: "Ada", Role: "mentee"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.Equal(t, "Bearer", registered.Token.TokenType)
	assert.NotEmpty(t, registered.Token.RefreshToken)

	_, err = env.auth.Register(ctx, &dto.RegisterRequest{Email: "ada@example.com", Password: "s3cretpass1", FullName: "Ada", Role: "mentor"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	loggedIn, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cretpass1"})
	require.NoError(t, err)

	refreshed, err := env.auth.RefreshToken(ctx, loggedIn.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, loggedIn.Token.RefreshToken, refreshed.RefreshToken)

	_, err = env.auth.RefreshToken(ctx, loggedIn.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.NoError(t, env.auth.Logout(ctx, refreshed.RefreshToken))
	_, err = env.auth.RefreshToken(ctx, refreshed.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthRefreshConcurrentReuse(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "ada@example.com", Password: "s3cretpass1", FullName: "Ada", Role: "mentee"})
	require.NoError(t, err)
	token := registered.Token.RefreshToken

	// a second refresh of the same token wins after the first has read it
	var inner *dto.TokenResponse
	env.store.beforeTokenConsume = func() {
		inner, err = env.auth.RefreshToken(ctx, token)
		require.NoError(t, err)
	}

	_, err = env.auth.RefreshToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	require.NotNil(t, inner)

	live := 0
	for _, tok := range env.store.tokens {
		if !tok.IsRevoked {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

func TestAuthLoginDisabled(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "bo@example.com", Password: "s3cretpass1", FullName: "Bo", Role: "mentor"})
	require.NoError(t, err)

	_, err = env.profiles.SetActive(ctx, "a1", registered.User.ID, false)
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "bo@example.com", Password: "s3cretpass1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = env.auth.RefreshToken(ctx, registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestDashboardByRole(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	req, err := env.mentorship.RequestMentorship(ctx, "t1", "m1", nil)
	require.NoError(t, err)
	_, err = env.mentorship.Respond(ctx, "m1", req.ID, domain.StatusAccepted)
	require.NoError(t, err)
	_, err = env.mentorship.RequestMentorship(ctx, "t2", "m1", nil)
	require.NoError(t, err)

	admin, err := env.dashboard.ForUser(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, &models.AdminStats{Mentors: 3, Mentees: 2, ActiveSessions: 1, PendingRequests: 1}, admin.Stats)
	assert.Len(t, admin.Users, 6)

	mentor, err := env.dashboard.ForUser(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(mentor.Mentees))
	require.Len(t, mentor.PendingRequests, 1)
	assert.Equal(t, "t2", mentor.PendingRequests[0].MenteeID)

	mentee, err := env.dashboard.ForUser(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMentee, mentee.Role)
	assert.Equal(t, []string{"m1"}, ids(mentee.Mentors))
	assert.Equal(t, []string{"m1", "m2"}, ids(mentee.AvailableMentors))

	// an unset role falls back to the mentee view
	unset, err := env.dashboard.ForProfile(ctx, &models.Profile{ID: "t2"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMentee, unset.Role)
}
