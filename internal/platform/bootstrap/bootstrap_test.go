package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, toLevel(tc.in))
		})
	}
}

func Test_newLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "catalog", "warn")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func Test_newLogger_TagsService(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newLogger(&buf, "catalog", "info")

	// when
	log.Info("hello")

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "catalog", record["service"])
	assert.NotContains(t, record, "source")
}
