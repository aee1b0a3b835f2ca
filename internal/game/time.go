package game

// Time is the simulated clock of a match. It implements clocky.Clock.
type Time struct {
	dt      float64
	frame   uint64
	elapsed float64
}

// Advance starts a new frame lasting dt seconds.
func (t *Time) Advance(dt float64) {
	t.dt = dt
	t.frame++
	t.elapsed += dt
}

// Delta returns the duration of the current frame in seconds.
func (t *Time) Delta() float64 { return t.dt }

// Frame returns the number of the current frame.
func (t *Time) Frame() uint64 { return t.frame }

// Elapsed returns the simulated seconds since the match started.
func (t *Time) Elapsed() float64 { return t.elapsed }
