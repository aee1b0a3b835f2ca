package injector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/loop"
)

type nullBackend struct {
	presents int
	closed   bool
}

func (b *nullBackend) Events(time.Time) []input.Event { return nil }
func (b *nullBackend) Size() (int, int, error)        { return 80, 24, nil }
func (b *nullBackend) Present(*draw.Frame) error      { b.presents++; return nil }
func (b *nullBackend) Closed() bool                   { return false }
func (b *nullBackend) Close() error                   { b.closed = true; return nil }

func TestInitializeMatch(t *testing.T) {
	s := config.Default()
	s.StartLevel = 1
	b := &nullBackend{}

	m, err := InitializeMatch(s, logging.Nop(), b, loop.Options{Tick: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, 1, m.World.Levels().Index())
	require.NotNil(t, m.World.Ship())
	width, height := m.World.Camera().Viewport()
	assert.Equal(t, float64(s.ViewWidth), width)
	assert.Equal(t, float64(s.ViewHeight), height)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, m.Run(ctx))
	assert.Positive(t, b.presents)

	require.NoError(t, m.Close())
	assert.True(t, b.closed)
	assert.Nil(t, m.World.Ship())
}

func TestProvideWorldOptions(t *testing.T) {
	s := config.Default()
	s.Debug = true
	s.StartLevel = 2

	opts := ProvideWorldOptions(s)
	assert.True(t, opts.Debug)
	assert.Equal(t, 2, opts.StartLevel)
	assert.Equal(t, float64(s.ViewWidth), opts.ViewWidth)
}
