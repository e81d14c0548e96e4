package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/mbm/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, parseLevel(tt.input), tt.want)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json")

	l.Info().Str("guid", "abc").Msg("saved")

	assert.Assert(t, strings.Contains(buf.String(), `"guid":"abc"`), buf.String())
	assert.Assert(t, strings.Contains(buf.String(), `"message":"saved"`), buf.String())
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "text")

	l.Info().Str("guid", "abc").Msg("saved")

	assert.Assert(t, strings.Contains(buf.String(), "guid=abc"), buf.String())
	assert.Assert(t, !strings.Contains(buf.String(), "{"), buf.String())
}

func TestSetup_WritesToFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	path := filepath.Join(t.TempDir(), "logs", "mbm.log")

	l, closeFn := Setup(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	l.Debug().Msg("hello")
	assert.NilError(t, closeFn())

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "hello"))
}
