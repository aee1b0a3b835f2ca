package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, Nop())
}

func TestJournalRing(t *testing.T) {
	frame := uint64(0)
	j := NewJournal(nil, func() uint64 { return frame })

	_, ok := j.Last()
	assert.False(t, ok)

	for i := range JournalSize + 5 {
		frame = uint64(i)
		j.Info(fmt.Sprintf("m%d", i), "")
	}

	assert.Equal(t, JournalSize, j.Len())
	tail := j.Tail(3)
	require.Len(t, tail, 3)
	assert.Equal(t, "m34", tail[0].Message)
	assert.Equal(t, "m36", tail[2].Message)
	assert.Equal(t, uint64(36), tail[2].Frame)

	all := j.Tail(100)
	assert.Len(t, all, JournalSize)
	assert.Equal(t, "m5", all[0].Message)

	last, ok := j.Last()
	require.True(t, ok)
	assert.Equal(t, "m36", last.Message)
}

func TestJournalWritesToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	j := NewJournal(zap.New(core), nil)

	j.Log(KindDanger, "Astronaut incapacitated", "astronaut")
	j.Info("drill constructed", "")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "astronaut", entries[0].ContextMap()["source"])
	assert.Equal(t, "danger", entries[0].ContextMap()["kind"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
}
