package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/azops/internal/logging"
)

func TestSecretRedaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "client secret", input: "s3cr3t-client-value"},
		{name: "empty secret is still redacted", input: ""},
		{name: "symbols", input: "password123!@#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "[REDACTED]", logging.Secret(tt.input).String())
			assert.Equal(t, "[REDACTED]", logging.Secret(tt.input).GoString())
		})
	}
}

func TestLoggerWritesLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, true, true)

	logger.Info("listed %d vaults", 3)
	logger.Warn("tenant %s not visible", "t1")
	logger.Error("request failed")
	logger.Debug("GET vault %s", "kv1")

	out := buf.String()
	assert.Contains(t, out, "✓ listed 3 vaults")
	assert.Contains(t, out, "⚠ tenant t1 not visible")
	assert.Contains(t, out, "✗ request failed")
	assert.Contains(t, out, "[DEBUG] GET vault kv1")
	assert.NotContains(t, out, "\033[")
}

func TestLoggerDebugDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, false, true)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.DebugEnabled())
}

func TestLoggerColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.NewWithWriter(&buf, false, false).Info("ok")
	assert.Equal(t, "\033[32m✓\033[0m ok\n", buf.String())
}

func TestLoggerRedactsSecretArgs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, true, true)
	logger.Debug("using client secret %s", logging.Secret("super-secret-password"))

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "super-secret-password")
}

func TestRedact(t *testing.T) {
	t.Parallel()

	got := logging.Redact("token=abcdef other=xyz", []string{"abcdef", "xyz"})
	assert.Equal(t, "token=[REDACTED] other=xyz", got)
}
