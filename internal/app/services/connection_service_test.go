package services

import (
	"context"
	"testing"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, env *testEnv, from, to string, answer domain.RelationshipStatus) *models.Connection {
	t.Helper()
	conn, err := env.connections.Create(context.Background(), from, to)
	require.NoError(t, err)
	if answer.IsAnswer() {
		conn, err = env.connections.Respond(context.Background(), to, conn.ID, answer)
		require.NoError(t, err)
	}
	return conn
}

func TestConnectionDuplicateAnyStatus(t *testing.T) {
	ctx := context.Background()

	for _, status := range []domain.RelationshipStatus{domain.StatusPending, domain.StatusAccepted, domain.StatusDeclined} {
		t.Run(status.String(), func(t *testing.T) {
			env := newTestEnv(domain.RequestPolicy{})
			connect(t, env, "t1", "m1", status)

			_, err := env.connections.Create(ctx, "t1", "m1")
			assert.ErrorIs(t, err, apperrors.ErrConnectionAlreadyExists)

			_, err = env.connections.Create(ctx, "m1", "t1")
			assert.ErrorIs(t, err, apperrors.ErrConnectionAlreadyExists)
			assert.Len(t, env.store.connections, 1)
		})
	}
}

func TestConnectionCreateValidation(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	_, err := env.connections.Create(ctx, "t1", "t1")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = env.connections.Create(ctx, "t1", "x1")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = env.connections.Create(ctx, "t1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = env.connections.Create(ctx, "x1", "t1")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestConnectionReopenAfterDecline(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{AllowRerequestAfterDecline: true})
	ctx := context.Background()

	declined := connect(t, env, "t1", "m1", domain.StatusDeclined)

	// the decliner asks back; the row flips direction so t1 answers
	reopened, err := env.connections.Create(ctx, "m1", "t1")
	require.NoError(t, err)
	assert.Equal(t, declined.ID, reopened.ID)
	assert.Equal(t, domain.StatusPending, reopened.Status)
	assert.Equal(t, "m1", env.store.connections[0].UserID1)

	_, err = env.connections.Respond(ctx, "m1", reopened.ID, domain.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.connections.Respond(ctx, "t1", reopened.ID, domain.StatusAccepted)
	require.NoError(t, err)
}

func TestConnectionRespond(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	conn := connect(t, env, "t1", "m1", "")

	_, err := env.connections.Respond(ctx, "t1", conn.ID, domain.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.connections.Respond(ctx, "t2", conn.ID, domain.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	accepted, err := env.connections.Respond(ctx, "m1", conn.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, accepted.Status)

	_, err = env.connections.Respond(ctx, "m1", conn.ID, domain.StatusDeclined)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Len(t, env.pub.to("t1", websocket.EventConnectionsChanged), 2)
	assert.Len(t, env.pub.to("m1", websocket.EventConnectionsChanged), 2)
	assert.Empty(t, env.pub.to("t2", websocket.EventConnectionsChanged))
}

func TestConnectionVisibleByRole(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	connect(t, env, "t1", "m1", domain.StatusAccepted)
	connect(t, env, "m2", "m1", domain.StatusAccepted)
	connect(t, env, "t2", "m1", "")
	connect(t, env, "a1", "t1", domain.StatusAccepted)
	connect(t, env, "a1", "m1", domain.StatusAccepted)

	tests := []struct {
		viewer string
		title  string
		want   []string
	}{
		{"m1", TitleMyMentees, []string{"t1"}},
		{"t1", TitleMyMentors, []string{"m1"}},
		{"m2", TitleMyMentees, []string{}},
		{"a1", TitleMyConnections, []string{"t1", "m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.viewer, func(t *testing.T) {
			visible, err := env.connections.Visible(ctx, tt.viewer)
			require.NoError(t, err)
			assert.Equal(t, tt.title, visible.Title)
			assert.Equal(t, tt.want, ids(visible.Profiles))
		})
	}
}

func TestConnectionAvailable(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	connect(t, env, "t1", "m1", domain.StatusAccepted)
	connect(t, env, "m2", "t1", "")
	connect(t, env, "t1", "a1", domain.StatusDeclined)

	available, err := env.connections.Available(ctx, "t1")
	require.NoError(t, err)

	disabled := map[string]bool{}
	for _, a := range available {
		disabled[a.Profile.ID] = a.ConnectDisabled
	}
	assert.Equal(t, map[string]bool{"a1": false, "m2": true, "t2": false}, disabled)
}
