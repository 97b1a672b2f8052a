package timing

import (
	"log/slog"
	"time"
)

const (
	busyWaitThreshold = 2 * time.Millisecond
	maxLag            = 5 * time.Millisecond
	maxDrift          = 10 * time.Millisecond
	driftCheckFrames  = 60
)

// AdaptiveLimiter sleeps for most of the frame and busy-waits the last
// stretch, correcting for drift once a second.
type AdaptiveLimiter struct {
	frameTime time.Duration
	next      time.Time
	frames    int64

	now    func() time.Time
	sleep  func(time.Duration)
	logger *slog.Logger
}

type Option func(*AdaptiveLimiter)

func WithLogger(l *slog.Logger) Option {
	return func(a *AdaptiveLimiter) { a.logger = l }
}

// WithSpeed scales the frame rate, e.g. 2 runs twice as fast. Non-positive
// values are ignored.
func WithSpeed(multiplier float64) Option {
	return func(a *AdaptiveLimiter) {
		if multiplier > 0 {
			a.frameTime = time.Duration(float64(FrameDuration()) / multiplier)
		}
	}
}

func withClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(a *AdaptiveLimiter) {
		a.now = now
		a.sleep = sleep
	}
}

func NewAdaptiveLimiter(opts ...Option) *AdaptiveLimiter {
	a := &AdaptiveLimiter{
		frameTime: FrameDuration(),
		now:       time.Now,
		sleep:     time.Sleep,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.next = a.now()
	return a
}

// FrameTime is the target duration of one frame.
func (a *AdaptiveLimiter) FrameTime() time.Duration {
	return a.frameTime
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	wait := a.next.Sub(now)

	switch {
	case wait > busyWaitThreshold:
		a.sleep(wait - time.Millisecond)
		a.spinUntil(a.next)
	case wait > 0:
		a.spinUntil(a.next)
	case wait < -maxLag:
		// too far behind, don't try to catch up
		a.next = now
	}

	a.next = a.next.Add(a.frameTime)
	a.frames++

	if a.frames%driftCheckFrames == 0 {
		drift := a.now().Sub(a.next)
		if drift.Abs() > maxDrift {
			a.next = a.next.Add(drift / 10)
			a.logger.Debug("frame timing drift correction", "drift_ms", drift.Milliseconds())
		}
	}
}

func (a *AdaptiveLimiter) spinUntil(t time.Time) {
	for a.now().Before(t) {
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.next = a.now()
	a.frames = 0
}
