package logx

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Int("game", 3).Msg("match")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "match")
	require.Contains(t, out, "game=3")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, l)

	l, err = ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, l)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
