package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, RoleEmployee.IsAdmin())

	assert.True(t, RoleAdmin.CanApprove())
	assert.True(t, RoleManager.CanApprove())
	assert.False(t, RoleEmployee.CanApprove())
}
