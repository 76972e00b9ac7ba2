package services

import (
	"context"
	"testing"
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskAssignment(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()
	due := time.Now().Add(72 * time.Hour)

	_, err := env.tasks.Create(ctx, "t1", &dto.CreateTaskRequest{Title: "Read", DueDate: due, AssignedTo: "t2"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.tasks.Create(ctx, "m1", &dto.CreateTaskRequest{Title: "Read", DueDate: due, AssignedTo: "m2"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = env.tasks.Create(ctx, "m1", &dto.CreateTaskRequest{Title: "  ", DueDate: due, AssignedTo: "t1"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	task, err := env.tasks.Create(ctx, "m1", &dto.CreateTaskRequest{Title: "Read chapter 3", DueDate: due, AssignedTo: "t1"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, task.Status)

	notified := env.pub.to("t1", websocket.EventTasksChanged)
	require.Len(t, notified, 1)
	assert.Equal(t, "New Task", notified[0].Title)

	assigned, err := env.tasks.ListAssigned(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	_, err = env.tasks.UpdateStatus(ctx, "t2", task.ID, domain.TaskCompleted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := env.tasks.UpdateStatus(ctx, "t1", task.ID, domain.TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, updated.Status)
	assert.Len(t, env.pub.to("m1", websocket.EventTasksChanged), 1)
}

func TestEventLifecycle(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()
	start := time.Now().Add(24 * time.Hour)

	_, err := env.events.Create(ctx, "t1", &dto.EventRequest{Title: "Office hours", StartDate: start, EndDate: start.Add(time.Hour)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.events.Create(ctx, "m1", &dto.EventRequest{Title: "Backwards", StartDate: start, EndDate: start.Add(-time.Hour)})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	event, err := env.events.Create(ctx, "m1", &dto.EventRequest{Title: "Office hours", StartDate: start, EndDate: start.Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, env.pub.to("", websocket.EventEventsChanged), 1)

	require.NoError(t, env.events.Join(ctx, event.ID, "t1"))
	assert.ErrorIs(t, env.events.Join(ctx, event.ID, "t1"), repositories.ErrAlreadyJoined)

	participants, err := env.events.Participants(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(participants))

	upcoming, err := env.events.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, 1, upcoming[0].ParticipantCount)

	_, err = env.events.Update(ctx, "m2", event.ID, &dto.EventRequest{Title: "Mine now", StartDate: start, EndDate: start})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.ErrorIs(t, env.events.Delete(ctx, "t1", event.ID), apperrors.ErrPermissionDenied)
	require.NoError(t, env.events.Delete(ctx, "a1", event.ID))
	_, err = env.events.Participants(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventJoinAfterEnd(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()
	start := time.Now().Add(-3 * time.Hour)

	event, err := env.events.Create(ctx, "m1", &dto.EventRequest{Title: "Yesterday", StartDate: start, EndDate: start.Add(time.Hour)})
	require.NoError(t, err)

	assert.ErrorIs(t, env.events.Join(ctx, event.ID, "t1"), apperrors.ErrBadRequest)
}

func TestMessageThreadMarksRead(t *testing.T) {
	env := newTestEnv(domain.RequestPolicy{})
	ctx := context.Background()

	_, err := env.messages.Send(ctx, "t1", &dto.SendMessageRequest{ReceiverID: "t1", Content: "me"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = env.messages.Send(ctx, "t1", &dto.SendMessageRequest{ReceiverID: "ghost", Content: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	for _, content := range []string{"hi", "are you free?"} {
		_, err := env.messages.Send(ctx, "t1", &dto.SendMessageRequest{ReceiverID: "m1", Content: content})
		require.NoError(t, err)
	}
	assert.Len(t, env.pub.to("m1", websocket.EventMessagesChanged), 2)
	assert.Empty(t, env.pub.to("t2", websocket.EventMessagesChanged))

	convs, err := env.messages.Conversations(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "t1", convs[0].Counterpart.ID)
	assert.Equal(t, 2, convs[0].UnreadCount)
	assert.Equal(t, "are you free?", convs[0].LastMessage.Content)

	thread, err := env.messages.Thread(ctx, "m1", "t1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.NotNil(t, thread[0].ReadAt)

	// read receipt to the sender
	assert.Len(t, env.pub.to("t1", websocket.EventMessagesChanged), 3)

	convs, err = env.messages.Conversations(ctx, "m1")
	require.NoError(t, err)
	assert.Zero(t, convs[0].UnreadCount)
}
