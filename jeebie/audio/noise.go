package audio

import "github.com/valerio/jeebie-core/jeebie/bit"

// NoiseChannel outputs the low bit of a linear feedback shift register.
type NoiseChannel struct {
	enabled     bool
	length      lengthCounter
	env         envelope
	clockShift  uint8
	shortMode   bool
	divisorCode uint8
	lfsr        uint16
	freqTimer   int
	restart     bool
}

// NoiseState is the persisted form of a NoiseChannel.
type NoiseState struct {
	Enabled     bool
	Length      lengthCounter
	Envelope    envelope
	ClockShift  uint8
	ShortMode   bool
	DivisorCode uint8
	LFSR        uint16
	FreqTimer   int32
	Restart     bool
}

// NoiseInfo is the inspection view of the noise channel.
type NoiseInfo struct {
	Enabled          bool
	LengthEnabled    bool
	InitialVolume    uint8
	Volume           uint8
	EnvelopeIncrease bool
	EnvelopePeriod   uint8
	ClockShift       uint8
	ShortMode        bool
	DivisorCode      uint8
	FrequencyHz      float64
}

func newNoiseChannel() NoiseChannel {
	return NoiseChannel{
		length: lengthCounter{Max: noiseLength},
		lfsr:   lfsrSeed,
	}
}

func (n *NoiseChannel) writeLength(value uint8) {
	n.length.load(uint16(value & 0x3F))
}

func (n *NoiseChannel) writeEnvelope(value uint8) {
	n.env.write(value)
	if !n.env.dacEnabled() {
		n.enabled = false
	}
}

// writePolynomial handles NR43: clock shift, LFSR width and divisor code.
func (n *NoiseChannel) writePolynomial(value uint8) {
	n.clockShift = value >> 4
	n.shortMode = bit.IsSet(noiseWidthBit, value)
	n.divisorCode = value & 0x07
}

func (n *NoiseChannel) writeControl(value uint8) {
	n.length.Enabled = bit.IsSet(lengthEnableBit, value)
	n.restart = bit.IsSet(triggerBit, value)
	if n.restart {
		n.Trigger()
	}
}

func (n *NoiseChannel) Trigger() {
	n.enabled = n.env.dacEnabled()
	n.length.trigger()
	n.env.trigger()
	n.lfsr = lfsrSeed
	n.freqTimer = n.period()
}

func (n *NoiseChannel) StepEnvelope() {
	n.env.step()
}

func (n *NoiseChannel) StepLength() {
	if n.length.step() {
		n.enabled = false
	}
}

func (n *NoiseChannel) period() int {
	return noiseDivisors[n.divisorCode] << n.clockShift
}

func (n *NoiseChannel) Tick(cycles int) {
	n.freqTimer -= cycles
	for n.freqTimer <= 0 {
		n.freqTimer += n.period()
		n.shift()
	}
}

// shift clocks the LFSR: bit 0 XOR bit 1 is fed into bit 14, and also into bit 6
// in 7-bit mode.
func (n *NoiseChannel) shift() {
	feedback := (n.lfsr ^ n.lfsr>>1) & 1
	n.lfsr = n.lfsr>>1 | feedback<<14
	if n.shortMode {
		n.lfsr = n.lfsr&^(1<<6) | feedback<<6
	}
}

func (n *NoiseChannel) Output() uint8 {
	if !n.enabled || n.lfsr&1 != 0 {
		return 0
	}
	return n.env.Volume
}

func (n *NoiseChannel) Enabled() bool { return n.enabled }

func (n *NoiseChannel) Info() NoiseInfo {
	return NoiseInfo{
		Enabled:          n.enabled,
		LengthEnabled:    n.length.Enabled,
		InitialVolume:    n.env.Initial,
		Volume:           n.env.Volume,
		EnvelopeIncrease: n.env.Increase,
		EnvelopePeriod:   n.env.Period,
		ClockShift:       n.clockShift,
		ShortMode:        n.shortMode,
		DivisorCode:      n.divisorCode,
		FrequencyHz:      4194304 / float64(n.period()),
	}
}

func (n *NoiseChannel) Snapshot() NoiseState {
	return NoiseState{
		Enabled:     n.enabled,
		Length:      n.length,
		Envelope:    n.env,
		ClockShift:  n.clockShift,
		ShortMode:   n.shortMode,
		DivisorCode: n.divisorCode,
		LFSR:        n.lfsr,
		FreqTimer:   int32(n.freqTimer),
		Restart:     n.restart,
	}
}

func (n *NoiseChannel) Restore(s NoiseState) {
	n.enabled = s.Enabled
	n.length = s.Length
	n.length.Max = noiseLength
	n.env = s.Envelope
	n.clockShift = s.ClockShift & 0x0F
	n.shortMode = s.ShortMode
	n.divisorCode = s.DivisorCode & 0x07
	n.lfsr = s.LFSR & 0x7FFF
	n.freqTimer = int(s.FreqTimer)
	n.restart = s.Restart
}
