package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/error7buddy/KiLagbe.Com/config"
)

func TestNew_LevelAndFormat(t *testing.T) {
	l := New(config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.WithField("request_id", "abc").Info("ad created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ad created", line["msg"])
	assert.Equal(t, "abc", line["request_id"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(config.LogConfig{Level: "loud", Format: "text"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := New(config.LogConfig{Level: "info", Format: "text", File: path, MaxSizeMB: 1})
	l.Info("hello")
	assert.FileExists(t, path)
}
