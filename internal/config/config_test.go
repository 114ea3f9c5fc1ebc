package config

import (
	"testing"
	"time"

	"prizedeck/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, int64(50*1024*1024), cfg.Server.MaxUploadBytes())
	assert.Equal(t, 0, cfg.Deck.HeaderLayout)
	assert.Equal(t, 1, cfg.Deck.ParticipantLayout)
	assert.Equal(t, "Punten_Presentatie_2025.pptx", cfg.Deck.OutputName)
	assert.Equal(t, "Punten ", cfg.Deck.SheetPrefix)
	assert.Equal(t, "Lokatie", cfg.Columns.Location)
	assert.Equal(t, "Prijscategorie", cfg.Columns.Prize)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("DECK_PARTICIPANT_LAYOUT", "3")
	t.Setenv("COLUMN_LOCATION", "Location")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, 3, cfg.Deck.ParticipantLayout)
	assert.Equal(t, "Location", cfg.Columns.Location)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non numeric upload cap", "MAX_UPLOAD_MB", "lots"},
		{"zero upload cap", "MAX_UPLOAD_MB", "0"},
		{"negative layout", "DECK_HEADER_LAYOUT", "-1"},
		{"bad duration", "SESSION_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
