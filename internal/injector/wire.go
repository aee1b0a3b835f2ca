//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/loop"
	"github.com/tomz197/spiritwatch/internal/terminal"
)

// InitializeMatch builds a match rendering to b.
func InitializeMatch(s config.Settings, log *zap.Logger, b terminal.Backend, opts loop.Options) (*Match, error) {
	wire.Build(MatchSet)
	return nil, nil
}
