package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promanage/promanage/internal/model"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role model.Role
		cap  model.Capability
		want bool
	}{
		{model.RoleManagement, model.CapCreateProject, true},
		{model.RoleManagement, model.CapDeleteProject, true},
		{model.RoleManagement, model.CapCreateUser, true},
		{model.RoleManagement, model.CapDeleteUser, true},
		{model.RoleTeamLead, model.CapCreateProject, true},
		{model.RoleTeamLead, model.CapDeleteProject, true},
		{model.RoleTeamLead, model.CapCreateUser, false},
		{model.RoleTeamLead, model.CapDeleteUser, false},
		{model.RoleDeveloper, model.CapCreateProject, false},
		{model.RoleDeveloper, model.CapDeleteUser, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.role.Can(c.cap), "%s / %s", c.role, c.cap)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, model.RoleDeveloper.Valid())
	assert.False(t, model.Role("INTERN").Valid())
	assert.False(t, model.Role("").Valid())
}

func TestUserInitial(t *testing.T) {
	assert.Equal(t, "P", model.User{Name: "Priya Sharma"}.Initial())
	assert.Equal(t, "?", model.User{}.Initial())
}
