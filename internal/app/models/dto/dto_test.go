package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
)

func TestNewConnectionListResponseSplitsRequests(t *testing.T) {
	me := "me"
	conns := []*models.Connection{
		{ID: "incoming", UserID1: "a", UserID2: me, Status: domain.StatusPending, User1: &models.Profile{ID: "a"}},
		{ID: "outgoing", UserID1: me, UserID2: "b", Status: domain.StatusPending},
		{ID: "active", UserID1: me, UserID2: "c", Status: domain.StatusAccepted, User2: &models.Profile{ID: "c"}},
		{ID: "declined", UserID1: "d", UserID2: me, Status: domain.StatusDeclined},
	}

	resp := NewConnectionListResponse(conns, me)

	require.Len(t, resp.Requests, 1)
	assert.Equal(t, "incoming", resp.Requests[0].ID)
	assert.Equal(t, "a", resp.Requests[0].Counterpart.ID)
	require.Len(t, resp.Active, 1)
	assert.Equal(t, "c", resp.Active[0].Counterpart.ID)
}

func TestHandleValidationErrorListsFields(t *testing.T) {
	type req struct {
		Title string `validate:"required"`
		Email string `validate:"required,email"`
	}
	err := validator.New().Struct(req{Email: "nope"})

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	fields, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.Equal(t, "Title is required", fields[0].Message)
}

func TestHandleValidationErrorMalformedBody(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request format", detail.Message)
}

func TestDashboardResponseOmitsOtherRoles(t *testing.T) {
	resp := NewDashboardResponse(&models.Dashboard{
		Role:    domain.RoleMentor,
		Mentees: []*models.Profile{{ID: "m1", Role: domain.RoleMentee}},
	})

	assert.Equal(t, "mentor", resp.Role)
	assert.Len(t, resp.Mentees, 1)
	assert.Nil(t, resp.Stats)
	assert.Nil(t, resp.Tasks)
}
