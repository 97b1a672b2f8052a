package timing

import "time"

// Limiter paces a host loop to the DMG frame rate.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due. It returns
	// immediately when the caller is behind schedule.
	WaitForNextFrame()

	// Reset drops accumulated schedule, e.g. after a pause.
	Reset()
}

// NewNoOpLimiter returns a limiter that never waits, for headless runs.
func NewNoOpLimiter() Limiter {
	return noOpLimiter{}
}

type noOpLimiter struct{}

func (noOpLimiter) WaitForNextFrame() {}
func (noOpLimiter) Reset()            {}

const (
	CyclesPerFrame = 70224
	CPUFrequency   = 4194304
)

// TargetFPS is the exact DMG refresh rate, about 59.73 Hz.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(CyclesPerFrame)
}

// FrameDuration returns the duration of a single frame at 1x speed.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}
