package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/game"
	"github.com/tomz197/spiritwatch/internal/injector"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/loop"
	"github.com/tomz197/spiritwatch/internal/terminal"
)

// shutdownGrace is how long players see the shutdown notice before their
// sessions are closed.
const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ssh server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(config.GetEnv("SPIRITWATCH_CONFIG", ""))
	if err != nil {
		return err
	}
	settings.ApplyEnv()

	log, err := logging.New(settings.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn("working directory", zap.Error(workErr))
	}
	log.Info("ssh config",
		zap.String("host", settings.SSH.Host),
		zap.String("port", settings.SSH.Port),
		zap.String("hostKeyPath", settings.SSH.HostKey),
		zap.String("workingDir", workingDir))

	// Sessions run until the server is told to stop.
	sessionsCtx, stopSessions := context.WithCancel(context.Background())
	defer stopSessions()
	sessions := newSessionSet()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSH.Host, settings.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware(sessionsCtx, settings, log, sessions),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting ssh server", zap.String("host", settings.SSH.Host), zap.String("port", settings.SSH.Port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")

		// Tell connected players, give them a moment, then end their matches.
		if n := sessions.broadcast(func(w *game.World) {
			w.Journal().Warn("Server shutting down", "server")
		}); n > 0 {
			log.Info("notified players about shutdown", zap.Int("players", n))
			time.Sleep(shutdownGrace)
		}
		stopSessions()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// gameMiddleware runs one match per SSH session.
func gameMiddleware(serverCtx context.Context, settings config.Settings, log *zap.Logger, sessions *sessionSet) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := log.With(zap.String("user", sess.User()))
			sessLog.Info("new game session",
				zap.String("terminal", pty.Term),
				zap.Int("width", pty.Window.Width),
				zap.Int("height", pty.Window.Height))

			// Create a terminal size tracker that updates on window changes
			tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					tracker.update(win.Width, win.Height)
				}
			}()

			backend := terminal.NewStream(sess, sess, tracker.getSize)
			match, err := injector.InitializeMatch(settings, sessLog, backend, loop.Options{
				Tick: settings.TickTime(),
				Idle: true,
			})
			if err != nil {
				_ = backend.Close()
				sessLog.Error("start match", zap.Error(err))
				return
			}

			ctx, cancel := context.WithCancel(sess.Context())
			defer cancel()
			stopOnShutdown := context.AfterFunc(serverCtx, cancel)
			defer stopOnShutdown()

			sessions.add(match.Runner)
			err = match.Run(ctx)
			sessions.remove(match.Runner)
			_ = match.Close()

			switch {
			case errors.Is(err, loop.ErrIdle):
				fmt.Fprintln(sess, "Disconnected for inactivity.")
			case err != nil:
				sessLog.Error("game error", zap.Error(err))
			}
			sessLog.Info("session ended")
			next(sess)
		}
	}
}

// sessionSet tracks the runners of live sessions.
type sessionSet struct {
	mu      sync.Mutex
	runners map[*loop.Runner]struct{}
}

func newSessionSet() *sessionSet {
	return &sessionSet{runners: make(map[*loop.Runner]struct{})}
}

func (s *sessionSet) add(r *loop.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners[r] = struct{}{}
}

func (s *sessionSet) remove(r *loop.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runners, r)
}

// broadcast submits c to every live session and returns how many there are.
func (s *sessionSet) broadcast(c loop.Command) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := range s.runners {
		r.Submit(c)
	}
	return len(s.runners)
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
