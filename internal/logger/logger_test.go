package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json").With().Str("component", "role_permission_service").Logger()

	log.Info().Int("role_id", 3).Msg("permission assigned")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "role_permission_service", entry["component"])
	assert.Equal(t, "permission assigned", entry["message"])
	assert.EqualValues(t, 3, entry["role_id"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty", "json")

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
