package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("MENTOR")
	require.NoError(t, err)
	assert.Equal(t, RoleMentor, role)

	role, err = ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUnset, role)

	_, err = ParseRole("student")
	assert.True(t, errors.Is(err, ErrInvalidRole))
	assert.Equal(t, RoleUnset, NormalizeRole("student"))
}

func TestDashboardRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleAdmin.DashboardRole())
	assert.Equal(t, RoleMentor, RoleMentor.DashboardRole())
	assert.Equal(t, RoleMentee, RoleMentee.DashboardRole())
	assert.Equal(t, RoleMentee, RoleUnset.DashboardRole())
	assert.Equal(t, RoleMentee, Role("superuser").DashboardRole())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleMentee.CanSelfRegister())
	assert.False(t, RoleAdmin.CanSelfRegister())
	assert.True(t, RoleAdmin.CanOrganize())
	assert.False(t, RoleMentee.CanOrganize())
}
