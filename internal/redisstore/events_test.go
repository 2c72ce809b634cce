package redisstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

func TestDecodeEvent(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(model.RolePermissionEvent{
		Type:          model.EventPermissionsAssigned,
		RoleID:        3,
		PermissionIDs: []int{4, 5},
		Count:         2,
		At:            at,
	})
	require.NoError(t, err)

	event, err := DecodeEvent(string(raw))
	require.NoError(t, err)
	assert.Equal(t, model.EventPermissionsAssigned, event.Type)
	assert.Equal(t, []int{4, 5}, event.PermissionIDs)
	assert.True(t, at.Equal(event.At))

	_, err = DecodeEvent("{not json")
	assert.Error(t, err)
}
