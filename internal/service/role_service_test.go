package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository/memory"
)

func TestRoleService(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	guest := store.AddRole(model.RoleGuest)
	store.AddRole(model.RoleAdmin)
	svc := NewRoleService(store.Roles())

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, model.RoleAdmin, roles[0].Name)

	role, err := svc.GetRole(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, role.Name)

	_, err = svc.GetRole(ctx, 404)
	assert.True(t, IsKind(err, KindNotFound))
}
