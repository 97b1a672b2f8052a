package audio

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

const waveRAMBase = int(addr.WaveRAMStart - addr.AudioStart)

// APU implements the Game Boy's Audio Processing Unit.
// It models the channel state machines and the frame sequencer; it does not mix or
// resample audio for playback.
// Reference: https://gbdev.io/pandocs/Audio.html
type APU struct {
	enabled bool

	// registers holds the last value written to FF10-FF25.
	registers [0x16]uint8

	// frame sequencer, 512 Hz
	frameStep   uint8
	frameCycles int

	square1 PulseChannel
	square2 PulseChannel
	wave    WaveChannel
	noise   NoiseChannel
}

// State is the persisted form of the APU.
type State struct {
	Enabled     bool
	Registers   [0x16]uint8
	FrameStep   uint8
	FrameCycles int32
	Square1     PulseState
	Square2     PulseState
	Wave        WaveState
	Noise       NoiseState
}

// New returns a powered-on APU with all channels silent.
func New() *APU {
	a := &APU{enabled: true}
	a.resetChannels()
	return a
}

func (a *APU) resetChannels() {
	ram := a.wave.ram
	a.square1 = newPulseChannel(true)
	a.square2 = newPulseChannel(false)
	a.wave = newWaveChannel()
	a.wave.ram = ram
	a.noise = newNoiseChannel()
}

// Tick advances the channels and the frame sequencer by cycles T-cycles.
func (a *APU) Tick(cycles int) {
	if !a.enabled {
		return
	}

	a.square1.Tick(cycles)
	a.square2.Tick(cycles)
	a.wave.Tick(cycles)
	a.noise.Tick(cycles)

	a.frameCycles += cycles
	for a.frameCycles >= cyclesPerStep {
		a.frameCycles -= cyclesPerStep
		a.stepFrameSequencer()
	}
}

// stepFrameSequencer runs the current step and then advances to the next one.
//
//	Step   Length  Sweep  Envelope
//	0      Clock   -      -
//	1      -       -      -
//	2      Clock   Clock  -
//	3      -       -      -
//	4      Clock   -      -
//	5      -       -      -
//	6      Clock   Clock  -
//	7      -       -      Clock
//
// Reference: https://gbdev.io/pandocs/Audio_details.html#div-apu
func (a *APU) stepFrameSequencer() {
	switch a.frameStep {
	case 0, 4:
		a.stepLength()
	case 2, 6:
		a.stepLength()
		a.square1.StepSweep()
	case 7:
		a.square1.StepEnvelope()
		a.square2.StepEnvelope()
		a.noise.StepEnvelope()
	}
	a.frameStep = (a.frameStep + 1) & 7
}

func (a *APU) stepLength() {
	a.square1.StepLength()
	a.square2.StepLength()
	a.wave.StepLength()
	a.noise.StepLength()
}

// ReadRegister reads FF10-FF3F. Write-only bits read back as 1.
func (a *APU) ReadRegister(address uint16) uint8 {
	index := int(address - addr.AudioStart)
	switch {
	case address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd:
		return a.wave.ram[index-waveRAMBase]
	case address == addr.NR52:
		return a.readStatus()
	case index < len(a.registers):
		return a.registers[index] | readMasks[index]
	default:
		return 0xFF
	}
}

func (a *APU) readStatus() uint8 {
	value := uint8(0x70)
	value = bit.SetTo(powerBit, value, a.enabled)
	for ch := range 4 {
		value = bit.SetTo(uint8(ch), value, a.SoundOn(ch+1))
	}
	return value
}

// WriteRegister writes FF10-FF3F. While powered off only NR52 and wave RAM accept
// writes.
func (a *APU) WriteRegister(address uint16, value uint8) {
	index := int(address - addr.AudioStart)
	switch {
	case address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd:
		a.wave.ram[index-waveRAMBase] = value
		return
	case address == addr.NR52:
		a.writePower(bit.IsSet(powerBit, value))
		return
	case index >= len(a.registers):
		return
	case !a.enabled:
		return
	}

	a.registers[index] = value

	switch address {
	case addr.NR10:
		a.square1.writeSweep(value)
	case addr.NR11:
		a.square1.writeDutyLength(value)
	case addr.NR12:
		a.square1.writeEnvelope(value)
	case addr.NR13:
		a.square1.writeFrequencyLow(value)
	case addr.NR14:
		a.square1.writeControl(value)
	case addr.NR21:
		a.square2.writeDutyLength(value)
	case addr.NR22:
		a.square2.writeEnvelope(value)
	case addr.NR23:
		a.square2.writeFrequencyLow(value)
	case addr.NR24:
		a.square2.writeControl(value)
	case addr.NR30:
		a.wave.writeDAC(value)
	case addr.NR31:
		a.wave.writeLength(value)
	case addr.NR32:
		a.wave.writeVolume(value)
	case addr.NR33:
		a.wave.writeFrequencyLow(value)
	case addr.NR34:
		a.wave.writeControl(value)
	case addr.NR41:
		a.noise.writeLength(value)
	case addr.NR42:
		a.noise.writeEnvelope(value)
	case addr.NR43:
		a.noise.writePolynomial(value)
	case addr.NR44:
		a.noise.writeControl(value)
	}
}

// writePower handles NR52 bit 7. Powering off clears NR10-NR51 and every channel;
// wave RAM is kept.
func (a *APU) writePower(on bool) {
	if on == a.enabled {
		return
	}
	a.enabled = on
	if on {
		a.frameStep = 0
		a.frameCycles = 0
		return
	}
	a.registers = [0x16]uint8{}
	a.resetChannels()
}

func (a *APU) Enabled() bool { return a.enabled }

// SoundOn reports the NR52 status bit of channel ch (1-4).
func (a *APU) SoundOn(ch int) bool {
	switch ch {
	case 1:
		return a.square1.Enabled()
	case 2:
		return a.square2.Enabled()
	case 3:
		return a.wave.Enabled()
	case 4:
		return a.noise.Enabled()
	}
	return false
}

// ChannelOutputs returns the current 4-bit level of each channel.
func (a *APU) ChannelOutputs() [4]uint8 {
	return [4]uint8{
		a.square1.Output(),
		a.square2.Output(),
		a.wave.Output(),
		a.noise.Output(),
	}
}

// MasterVolume decodes NR50 into left and right volume, 0-7.
func (a *APU) MasterVolume() (left, right uint8) {
	nr50 := a.registers[addr.NR50-addr.AudioStart]
	return (nr50 >> 4) & 0x07, nr50 & 0x07
}

// Panning decodes NR51. Index 0 is channel 1.
func (a *APU) Panning() (left, right [4]bool) {
	nr51 := a.registers[addr.NR51-addr.AudioStart]
	for ch := range uint8(4) {
		right[ch] = bit.IsSet(ch, nr51)
		left[ch] = bit.IsSet(ch+4, nr51)
	}
	return left, right
}

func (a *APU) Square1() PulseInfo { return a.square1.Info() }

func (a *APU) Square2() PulseInfo { return a.square2.Info() }

func (a *APU) Wave() WaveInfo { return a.wave.Info() }

func (a *APU) Noise() NoiseInfo { return a.noise.Info() }

// FrameStep is the frame sequencer step that runs next.
func (a *APU) FrameStep() uint8 { return a.frameStep }

func (a *APU) Snapshot() State {
	return State{
		Enabled:     a.enabled,
		Registers:   a.registers,
		FrameStep:   a.frameStep,
		FrameCycles: int32(a.frameCycles),
		Square1:     a.square1.Snapshot(),
		Square2:     a.square2.Snapshot(),
		Wave:        a.wave.Snapshot(),
		Noise:       a.noise.Snapshot(),
	}
}

func (a *APU) Restore(s State) {
	a.enabled = s.Enabled
	a.registers = s.Registers
	a.frameStep = s.FrameStep & 7
	a.frameCycles = int(s.FrameCycles)
	a.square1.Restore(s.Square1)
	a.square2.Restore(s.Square2)
	a.wave.Restore(s.Wave)
	a.noise.Restore(s.Noise)
}
