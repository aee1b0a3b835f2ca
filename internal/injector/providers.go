// Package injector assembles a match from its collaborators.
package injector

import (
	"context"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/game"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/loop"
	"github.com/tomz197/spiritwatch/internal/terminal"
)

// MatchSet provides everything a Match needs besides the settings, the
// logger, the terminal and the loop options.
var MatchSet = wire.NewSet(
	input.NewControlManager,
	collision.NewSystem,
	ProvideWorldOptions,
	game.NewWorld,
	loop.New,
	NewMatch,
)

// ProvideWorldOptions derives the world options from the settings.
func ProvideWorldOptions(s config.Settings) game.Options {
	return game.Options{
		Seed:       uint64(time.Now().UnixNano()),
		ViewWidth:  float64(s.ViewWidth),
		ViewHeight: float64(s.ViewHeight),
		StartLevel: s.StartLevel,
		Debug:      s.Debug,
	}
}

// Match is one running game on one terminal.
type Match struct {
	World   *game.World
	Runner  *loop.Runner
	Backend terminal.Backend
}

// NewMatch loads the first level.
func NewMatch(w *game.World, r *loop.Runner, b terminal.Backend, log *zap.Logger) (*Match, error) {
	if err := w.Start(); err != nil {
		return nil, err
	}
	log.Info("match started", zap.String("match", w.ID.String()))
	return &Match{World: w, Runner: r, Backend: b}, nil
}

// Run plays the match until ctx is done or the player leaves.
func (m *Match) Run(ctx context.Context) error {
	return m.Runner.Run(ctx)
}

// Close tears down the world and restores the terminal.
func (m *Match) Close() error {
	m.World.Close()
	return m.Backend.Close()
}
