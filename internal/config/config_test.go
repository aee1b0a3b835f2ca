package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	s, err := Parse(strings.NewReader("tick_rate: 30\nssh:\n  port: \"2300\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 30, s.TickRate)
	assert.Equal(t, "2300", s.SSH.Port)
	assert.Equal(t, "::", s.SSH.Host)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, time.Second/30, s.TickTime())
}

func TestParseEmptyInput(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("tick_rate: [1, 2"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/spiritwatch.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open settings")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SPIRITWATCH_TICK_RATE", "20")
	t.Setenv("SPIRITWATCH_DEBUG", "true")
	t.Setenv("SSH_PORT", "2022")
	t.Setenv("UI_ADDR", ":8080")
	t.Setenv("SPIRITWATCH_START_LEVEL", "not-a-number")

	s := Default()
	s.ApplyEnv()

	assert.Equal(t, 20, s.TickRate)
	assert.True(t, s.Debug)
	assert.Equal(t, "2022", s.SSH.Port)
	assert.Equal(t, ":8080", s.UIAddr)
	assert.Equal(t, 0, s.StartLevel)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SW_TEST_FLOAT", "1.5")
	assert.Equal(t, 1.5, GetEnvFloat("SW_TEST_FLOAT", 0))
	assert.Equal(t, 7.0, GetEnvFloat("SW_TEST_MISSING", 7))
	assert.Equal(t, "x", GetEnv("SW_TEST_MISSING", "x"))
}
