package audio

import "github.com/valerio/jeebie-core/jeebie/bit"

// envelope is the NRx2 volume unit shared by the pulse and noise channels.
// Fields are exported so the struct can be persisted as is.
type envelope struct {
	Initial  uint8
	Increase bool
	Period   uint8
	Volume   uint8
	Timer    uint8
}

func (e *envelope) write(value uint8) {
	e.Initial = value >> 4
	e.Increase = bit.IsSet(envelopeIncrease, value)
	e.Period = value & 0x07
}

// dacEnabled mirrors the hardware rule: the DAC is off when NRx2 bits 3-7 are all zero.
func (e *envelope) dacEnabled() bool {
	return e.Initial != 0 || e.Increase
}

func (e *envelope) trigger() {
	e.Volume = e.Initial
	e.Timer = e.Period
}

func (e *envelope) step() {
	if e.Period == 0 {
		return
	}
	if e.Timer > 0 {
		e.Timer--
	}
	if e.Timer != 0 {
		return
	}
	e.Timer = e.Period
	if e.Increase && e.Volume < 15 {
		e.Volume++
	} else if !e.Increase && e.Volume > 0 {
		e.Volume--
	}
}

// lengthCounter disables its channel when it counts down to zero while enabled.
type lengthCounter struct {
	Max     uint16
	Counter uint16
	Enabled bool
}

func (l *lengthCounter) load(value uint16) {
	l.Counter = l.Max - value
}

func (l *lengthCounter) trigger() {
	if l.Counter == 0 {
		l.Counter = l.Max
	}
}

// step returns true when the counter expires on this clock.
func (l *lengthCounter) step() bool {
	if !l.Enabled || l.Counter == 0 {
		return false
	}
	l.Counter--
	return l.Counter == 0
}
