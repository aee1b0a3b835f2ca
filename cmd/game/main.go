package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/injector"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/loop"
	"github.com/tomz197/spiritwatch/internal/terminal"
	"github.com/tomz197/spiritwatch/internal/uibridge"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(config.GetEnv("SPIRITWATCH_CONFIG", ""))
	if err != nil {
		return err
	}
	settings.ApplyEnv()

	// Log to a file so log lines do not tear the game screen.
	log, err := logging.New(settings.LogLevel, settings.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	backend, restore, err := openTerminal()
	if err != nil {
		return err
	}
	defer restore()

	match, err := injector.InitializeMatch(settings, log, backend, loop.Options{Tick: settings.TickTime()})
	if err != nil {
		_ = backend.Close()
		return err
	}
	defer func() { _ = match.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if settings.UIAddr != "" {
		bridge := uibridge.New(match.Runner, log)
		match.Runner.Observe(bridge.Publish)
		g.Go(func() error { return bridge.Serve(ctx, settings.UIAddr) })
	}
	g.Go(func() error {
		defer cancel()
		return match.Run(ctx)
	})

	err = g.Wait()
	log.Info("game ended", zap.Error(err))
	return err
}

// openTerminal uses tcell unless SPIRITWATCH_RAW asks for the plain ANSI
// stream over stdin and stdout.
func openTerminal() (terminal.Backend, func(), error) {
	if !config.GetEnvBool("SPIRITWATCH_RAW", false) {
		b, err := terminal.NewTcell()
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("enable raw mode: %w", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }
	return terminal.NewStream(os.Stdin, os.Stdout, nil), restore, nil
}
