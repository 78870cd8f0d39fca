package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in   string
		want slog.Level
	}
	cases := []testCase{
		{in: "trace", want: LevelTrace},
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in))
		})
	}
}

func TestSetupLoggerSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(&stdout, &stderr, "debug", "", "json")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("matched", "rule", "caps lock")
	logger.Error("parse failed", "rule", "bad")

	assert.Contains(t, stdout.String(), `"msg":"matched"`)
	assert.NotContains(t, stdout.String(), "parse failed")
	assert.Contains(t, stderr.String(), `"msg":"parse failed"`)
	assert.NotContains(t, stderr.String(), "matched")
}

func TestSetupLoggerLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, _, err := setupLogger(&stdout, &stderr, "warn", "", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "msg=shown")
	assert.False(t, logger.Enabled(context.Background(), LevelTrace))
}

func TestNewHandlerAutoIsJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "auto", nil)).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }}

	r.Log("mouse", []byte{0x01, 0xff, 0x00})
	r.Log("mouse", nil)
	assert.Equal(t, "2024/01/02 03:04:05 mouse report: 3 bytes, hex: 01 ff 00\n", buf.String())

	NewRaw(nil).Log("mouse", []byte{1})
}
