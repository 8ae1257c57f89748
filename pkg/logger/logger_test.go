package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay/pkg/logger"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, logger.Configure(l, &buf, "debug", "json"))

	l.WithField("session", "s1").Debug("connected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connected", entry["msg"])
	assert.Equal(t, "s1", entry["session"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigure_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, logger.Configure(l, &buf, "warn", "text"))

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigure_Errors(t *testing.T) {
	assert.Error(t, logger.Configure(log.New(), nil, "loud", "text"))
	assert.Error(t, logger.Configure(log.New(), nil, "info", "xml"))
}
