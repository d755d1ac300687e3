package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestNew_InfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Getenv: noEnv})

	logger.Debug("debug message")
	logger.Info("info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Verbose: true, Output: &buf, Getenv: noEnv})

	logger.Debugf("reading %s", "in.png")
	assert.Contains(t, buf.String(), "reading in.png")
}

func TestNew_EnvOverridesVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Verbose: true,
		Output:  &buf,
		Getenv: func(key string) string {
			if key == LevelEnv {
				return "warn"
			}
			return ""
		},
	})

	logger.Info("info message")
	logger.Warnf("%s message", "warn")

	output := buf.String()
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}

func TestNew_InvalidEnvLevelIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Getenv: func(string) string { return "loud" }})

	logger.Info("info message")
	assert.Contains(t, buf.String(), "info message")
}

func TestNew_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{JSON: true, Output: &buf, Getenv: noEnv})

	logger.WithField("component", "pngmsg").
		WithFields(map[string]interface{}{"chunk": "ruSt"}).
		Info("encoded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "pngmsg", entry["component"])
	assert.Equal(t, "ruSt", entry["chunk"])
	assert.Equal(t, "encoded", entry["msg"])
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.WithError(assert.AnError).Info("nothing to see")
}

func TestWithErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{JSON: true, Output: &buf, Getenv: noEnv})

	logger.WithError(assert.AnError).Info("load failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}
