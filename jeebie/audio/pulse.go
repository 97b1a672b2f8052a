package audio

import (
	"time"

	"github.com/valerio/jeebie-core/jeebie/bit"
)

// PulseChannel is a square wave generator. Channel 1 additionally has a frequency
// sweep unit; channel 2 ignores the sweep register.
type PulseChannel struct {
	hasSweep bool
	enabled  bool

	sweepPeriod   uint8
	sweepDecrease bool
	sweepShift    uint8
	sweepTimer    uint8
	sweepEnabled  bool
	shadowFreq    uint16

	duty       uint8
	dutyPos    uint8
	lengthLoad uint8
	length     lengthCounter
	env        envelope

	freq      uint16
	freqTimer int
	restart   bool
}

// PulseState is the persisted form of a PulseChannel.
type PulseState struct {
	Enabled       bool
	SweepPeriod   uint8
	SweepDecrease bool
	SweepShift    uint8
	SweepTimer    uint8
	SweepEnabled  bool
	ShadowFreq    uint16
	Duty          uint8
	DutyPos       uint8
	LengthLoad    uint8
	Length        lengthCounter
	Envelope      envelope
	Freq          uint16
	FreqTimer     int32
	Restart       bool
}

// PulseInfo is a snapshot of everything a sound register viewer shows for a pulse
// channel.
type PulseInfo struct {
	Enabled          bool
	DACEnabled       bool
	SweepTime        time.Duration
	SweepIncrease    bool
	SweepShift       uint8
	Duty             uint8
	DutyPercent      float64
	LengthSeconds    float64
	LengthEnabled    bool
	InitialVolume    uint8
	Volume           uint8
	EnvelopeIncrease bool
	EnvelopePeriod   uint8
	Frequency        uint16
	FrequencyHz      float64
	Restart          bool
}

func newPulseChannel(hasSweep bool) PulseChannel {
	return PulseChannel{
		hasSweep: hasSweep,
		length:   lengthCounter{Max: pulseLength},
	}
}

// writeSweep handles NR10.
func (p *PulseChannel) writeSweep(value uint8) {
	p.sweepPeriod = (value >> 4) & 0x07
	p.sweepDecrease = bit.IsSet(sweepDecrease, value)
	p.sweepShift = value & 0x07
}

// writeDutyLength handles NRx1.
func (p *PulseChannel) writeDutyLength(value uint8) {
	p.duty = value >> 6
	p.lengthLoad = value & 0x3F
	p.length.load(uint16(p.lengthLoad))
}

// writeEnvelope handles NRx2. Turning the DAC off silences the channel at once.
func (p *PulseChannel) writeEnvelope(value uint8) {
	p.env.write(value)
	if !p.env.dacEnabled() {
		p.enabled = false
	}
}

func (p *PulseChannel) writeFrequencyLow(value uint8) {
	p.freq = p.freq&0x700 | uint16(value)
}

// writeControl handles NRx4: frequency bits 8-10, length enable and trigger.
func (p *PulseChannel) writeControl(value uint8) {
	p.freq = p.freq&0xFF | uint16(value&0x07)<<8
	p.length.Enabled = bit.IsSet(lengthEnableBit, value)
	p.restart = bit.IsSet(triggerBit, value)
	if p.restart {
		p.Trigger()
	}
}

// Trigger restarts the channel: length, envelope, frequency timer and sweep are
// reloaded. The channel only turns on if its DAC is enabled.
func (p *PulseChannel) Trigger() {
	p.enabled = p.env.dacEnabled()
	p.length.trigger()
	p.env.trigger()
	p.freqTimer = p.period()

	if !p.hasSweep {
		return
	}
	p.shadowFreq = p.freq
	p.sweepTimer = p.sweepReload()
	p.sweepEnabled = p.sweepPeriod != 0 || p.sweepShift != 0
	if p.sweepShift != 0 {
		if _, overflow := p.nextSweepFrequency(); overflow {
			p.enabled = false
		}
	}
}

func (p *PulseChannel) sweepReload() uint8 {
	if p.sweepPeriod == 0 {
		return 8
	}
	return p.sweepPeriod
}

// nextSweepFrequency computes shadow ± (shadow >> shift) and reports whether it
// leaves the 11-bit range.
func (p *PulseChannel) nextSweepFrequency() (uint16, bool) {
	delta := p.shadowFreq >> p.sweepShift
	if p.sweepDecrease {
		return p.shadowFreq - delta, false
	}
	next := p.shadowFreq + delta
	return next, next > maxFrequency
}

// StepSweep is clocked at 128 Hz. An overflowing result disables the channel and
// leaves the frequency as it was.
func (p *PulseChannel) StepSweep() {
	if !p.hasSweep {
		return
	}
	if p.sweepTimer > 0 {
		p.sweepTimer--
	}
	if p.sweepTimer != 0 {
		return
	}
	p.sweepTimer = p.sweepReload()
	if !p.sweepEnabled || p.sweepPeriod == 0 {
		return
	}

	next, overflow := p.nextSweepFrequency()
	if overflow {
		p.enabled = false
		return
	}
	if p.sweepShift == 0 {
		return
	}
	p.freq = next
	p.shadowFreq = next

	// the new value is checked again without being written back
	if _, overflow := p.nextSweepFrequency(); overflow {
		p.enabled = false
	}
}

// StepEnvelope is clocked at 64 Hz.
func (p *PulseChannel) StepEnvelope() {
	p.env.step()
}

// StepLength is clocked at 256 Hz.
func (p *PulseChannel) StepLength() {
	if p.length.step() {
		p.enabled = false
	}
}

func (p *PulseChannel) period() int {
	return (frequencyOffset - int(p.freq)) * 4
}

// Tick advances the waveform position.
func (p *PulseChannel) Tick(cycles int) {
	p.freqTimer -= cycles
	for p.freqTimer <= 0 {
		p.freqTimer += p.period()
		p.dutyPos = (p.dutyPos + 1) & 7
	}
}

// Output is the current digital level, 0-15.
func (p *PulseChannel) Output() uint8 {
	if !p.enabled {
		return 0
	}
	if bit.IsSet(7-p.dutyPos, dutyPatterns[p.duty]) {
		return p.env.Volume
	}
	return 0
}

func (p *PulseChannel) Enabled() bool { return p.enabled }

func (p *PulseChannel) DACEnabled() bool { return p.env.dacEnabled() }

// SweepTime is the interval between sweep steps, period/128 seconds.
func (p *PulseChannel) SweepTime() time.Duration {
	return time.Duration(p.sweepPeriod) * time.Second / 128
}

func (p *PulseChannel) SweepIncrease() bool { return !p.sweepDecrease }

func (p *PulseChannel) SweepShift() uint8 { return p.sweepShift }

func (p *PulseChannel) Duty() uint8 { return p.duty }

func (p *PulseChannel) DutyPercent() float64 { return dutyPercents[p.duty] }

// LengthSeconds is the play time programmed through NRx1, (64 - length) / 256 seconds.
func (p *PulseChannel) LengthSeconds() float64 {
	return float64(pulseLength-int(p.lengthLoad)) / 256
}

func (p *PulseChannel) LengthEnabled() bool { return p.length.Enabled }

func (p *PulseChannel) InitialVolume() uint8 { return p.env.Initial }

// Volume is the current envelope volume.
func (p *PulseChannel) Volume() uint8 { return p.env.Volume }

func (p *PulseChannel) EnvelopeIncrease() bool { return p.env.Increase }

func (p *PulseChannel) EnvelopePeriod() uint8 { return p.env.Period }

// Frequency is the 11-bit frequency register.
func (p *PulseChannel) Frequency() uint16 { return p.freq }

// FrequencyHz is the tone frequency, 131072 / (2048 - f).
func (p *PulseChannel) FrequencyHz() float64 {
	return 131072 / float64(frequencyOffset-int(p.freq))
}

// Restart reports whether the last NRx4 write had the trigger bit set.
func (p *PulseChannel) Restart() bool { return p.restart }

func (p *PulseChannel) Info() PulseInfo {
	return PulseInfo{
		Enabled:          p.enabled,
		DACEnabled:       p.DACEnabled(),
		SweepTime:        p.SweepTime(),
		SweepIncrease:    p.SweepIncrease(),
		SweepShift:       p.sweepShift,
		Duty:             p.duty,
		DutyPercent:      p.DutyPercent(),
		LengthSeconds:    p.LengthSeconds(),
		LengthEnabled:    p.length.Enabled,
		InitialVolume:    p.env.Initial,
		Volume:           p.env.Volume,
		EnvelopeIncrease: p.env.Increase,
		EnvelopePeriod:   p.env.Period,
		Frequency:        p.freq,
		FrequencyHz:      p.FrequencyHz(),
		Restart:          p.restart,
	}
}

func (p *PulseChannel) Snapshot() PulseState {
	return PulseState{
		Enabled:       p.enabled,
		SweepPeriod:   p.sweepPeriod,
		SweepDecrease: p.sweepDecrease,
		SweepShift:    p.sweepShift,
		SweepTimer:    p.sweepTimer,
		SweepEnabled:  p.sweepEnabled,
		ShadowFreq:    p.shadowFreq,
		Duty:          p.duty,
		DutyPos:       p.dutyPos,
		LengthLoad:    p.lengthLoad,
		Length:        p.length,
		Envelope:      p.env,
		Freq:          p.freq,
		FreqTimer:     int32(p.freqTimer),
		Restart:       p.restart,
	}
}

func (p *PulseChannel) Restore(s PulseState) {
	p.enabled = s.Enabled
	p.sweepPeriod = s.SweepPeriod & 0x07
	p.sweepDecrease = s.SweepDecrease
	p.sweepShift = s.SweepShift & 0x07
	p.sweepTimer = s.SweepTimer
	p.sweepEnabled = s.SweepEnabled
	p.shadowFreq = s.ShadowFreq & maxFrequency
	p.duty = s.Duty & 0x03
	p.dutyPos = s.DutyPos & 0x07
	p.lengthLoad = s.LengthLoad & 0x3F
	p.length = s.Length
	p.length.Max = pulseLength
	p.env = s.Envelope
	p.freq = s.Freq & maxFrequency
	p.freqTimer = int(s.FreqTimer)
	p.restart = s.Restart
}
