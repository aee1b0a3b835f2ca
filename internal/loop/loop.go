// Package loop provides the main game loop: Input → Update → Draw → Present,
// at a fixed frame rate.
package loop

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/game"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/terminal"
)

// ErrIdle is returned by Run when an idle-limited player stopped sending input.
var ErrIdle = errors.New("loop: player idle")

// commandBuffer is the number of queued commands from other goroutines.
const commandBuffer = 64

// Command mutates the world on the loop goroutine.
type Command func(w *game.World)

// Observer receives the UI snapshot after every frame.
type Observer func(game.Snapshot)

// Options configure a Runner.
type Options struct {
	// Tick is the frame duration.
	Tick time.Duration
	// Idle ends the run after a stretch without input.
	Idle bool
}

// Runner drives one match on one terminal.
type Runner struct {
	world   *game.World
	backend terminal.Backend
	opts    Options
	log     *zap.Logger

	canvas *draw.Canvas
	frame  *draw.Frame

	commands  chan Command
	observers []Observer

	lastInput time.Time
	warned    bool
}

// New creates a runner. The world's controls map mouse cells through the
// runner's canvas from now on.
func New(w *game.World, b terminal.Backend, opts Options, log *zap.Logger) *Runner {
	if opts.Tick <= 0 {
		opts.Tick = config.Default().TickTime()
	}
	width, height := w.Camera().Viewport()
	termWidth, termHeight, err := b.Size()
	if err != nil {
		termWidth, termHeight = int(width), int(height/2)
	}
	r := &Runner{
		world:     w,
		backend:   b,
		opts:      opts,
		log:       log,
		canvas:    draw.NewScaledCanvas(termWidth, termHeight, width, height),
		commands:  make(chan Command, commandBuffer),
		lastInput: time.Now(),
	}
	r.frame = draw.NewFrame(r.canvas, w.Camera())
	r.resize(termWidth, termHeight)

	ctl := w.Controls()
	ctl.ScreenMapper = r.canvas.TerminalToLogical
	ctl.HoldTimeout = config.KeyHoldMillis * time.Millisecond
	return r
}

// Submit queues c for the next frame. It reports false when the queue is full.
// Safe for concurrent use.
func (r *Runner) Submit(c Command) bool {
	select {
	case r.commands <- c:
		return true
	default:
		return false
	}
}

// Observe registers o. Call before Run.
func (r *Runner) Observe(o Observer) {
	r.observers = append(r.observers, o)
}

// Run loops until ctx is done, the player quits or the terminal closes.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.Tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), config.MaxFrameDelta)
			last = now
			running, err := r.Frame(now, dt)
			if err != nil || !running {
				return err
			}
		}
	}
}

// Frame runs one iteration. It reports whether the loop should go on.
func (r *Runner) Frame(now time.Time, dt float64) (bool, error) {
	if !r.processInput(now) {
		return false, nil
	}
	r.runCommands()
	r.updateScreen()

	r.frame.Reset()
	r.world.Step(dt, r.frame)

	if len(r.observers) > 0 {
		snap := r.world.Snapshot()
		for _, o := range r.observers {
			o(snap)
		}
	}

	if err := r.backend.Present(r.frame); err != nil {
		return false, pkgerrors.Wrap(err, "present frame")
	}
	if err := r.checkIdle(now); err != nil {
		return false, err
	}
	return !r.backend.Closed(), nil
}

// processInput feeds pending events to the controls. It returns false on quit.
func (r *Runner) processInput(now time.Time) bool {
	ctl := r.world.Controls()
	for _, ev := range r.backend.Events(now) {
		switch e := ev.(type) {
		case input.KeyEvent:
			if e.Code == input.KeyCtrlC || e.Code == "q" {
				return false
			}
			if e.Code == input.KeyEnter && r.world.Levels().Done() {
				return false
			}
			r.lastInput = now
		case input.MouseEvent:
			r.lastInput = now
		case input.ResizeEvent:
			r.resize(e.Width, e.Height)
			continue
		}
		ctl.Apply(ev)
	}
	ctl.ReleaseStale(now)
	return true
}

func (r *Runner) runCommands() {
	for {
		select {
		case c := <-r.commands:
			c(r.world)
		default:
			return
		}
	}
}

// updateScreen follows terminal size changes the backend does not report as events.
func (r *Runner) updateScreen() {
	width, height, err := r.backend.Size()
	if err != nil {
		return
	}
	r.resize(width, height)
}

// resize clamps the render area and centres it in the terminal.
func (r *Runner) resize(termWidth, termHeight int) {
	renderWidth := min(termWidth, config.MaxTermWidth)
	renderHeight := min(termHeight, config.MaxTermHeight)
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset((termWidth-renderWidth)/2, (termHeight-renderHeight)/2)
}

func (r *Runner) checkIdle(now time.Time) error {
	if !r.opts.Idle {
		return nil
	}
	idle := now.Sub(r.lastInput).Seconds()
	switch {
	case idle > config.InactivityDisconnect:
		r.log.Info("disconnecting idle player", zap.Float64("idle", idle))
		return ErrIdle
	case idle > config.InactivityWarn && !r.warned:
		r.warned = true
		r.world.Journal().Warn("Still there? Press any key to stay connected", "session")
	case idle <= config.InactivityWarn:
		r.warned = false
	}
	return nil
}
