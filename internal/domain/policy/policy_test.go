package policy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

func TestAllowed_Table(t *testing.T) {
	tests := []struct {
		role entities.UserRole
		perm Permission
		want bool
	}{
		{entities.RoleAdmin, UsersManage, true},
		{entities.RoleAdmin, MeetingsDelete, true},
		{entities.RoleAdmin, EvaluationsWrite, true},
		{entities.RoleEvaluator, EvaluationsWrite, true},
		{entities.RoleEvaluator, StatisticsReadAny, true},
		{entities.RoleEvaluator, UsersManage, false},
		{entities.RoleEvaluator, MeetingsDelete, false},
		{entities.RoleSalesperson, MeetingsWrite, true},
		{entities.RoleSalesperson, FailedCasesWrite, true},
		{entities.RoleSalesperson, EvaluationsWrite, false},
		{entities.RoleSalesperson, StatisticsReadAny, false},
		{entities.RoleGuest, MeetingsRead, true},
		{entities.RoleGuest, UsersManage, false},
		{entities.UserRole("intern"), MeetingsRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.perm))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(entities.RoleAdmin, UsersManage))

	err := Authorize(entities.RoleSalesperson, UsersManage)
	require.Error(t, err)

	var forbidden ErrForbidden
	require.True(t, errors.As(err, &forbidden))
	assert.Equal(t, entities.RoleSalesperson, forbidden.Role)
	assert.Equal(t, UsersManage, forbidden.Permission)
}

func TestRestricted(t *testing.T) {
	assert.False(t, Restricted(entities.RoleAdmin))
	assert.False(t, Restricted(entities.RoleEvaluator))
	assert.True(t, Restricted(entities.RoleSalesperson))
	assert.True(t, Restricted(entities.RoleGuest))
	assert.True(t, Restricted(entities.UserRole("")))
}

func TestMeetingScope(t *testing.T) {
	me, other := uuid.New(), uuid.New()

	open := MeetingScope(entities.RoleEvaluator, me)
	assert.Nil(t, open.OwnerID)
	assert.True(t, open.Includes(other))

	own := MeetingScope(entities.RoleSalesperson, me)
	require.NotNil(t, own.OwnerID)
	assert.Equal(t, me, *own.OwnerID)
	assert.True(t, own.Includes(me))
	assert.False(t, own.Includes(other))

	assert.True(t, CanView(entities.RoleAdmin, me, other))
	assert.False(t, CanView(entities.RoleGuest, me, other))
	assert.True(t, CanView(entities.RoleGuest, me, me))
}
