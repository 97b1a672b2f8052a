package audio

import "github.com/valerio/jeebie-core/jeebie/bit"

// WaveChannel plays 32 4-bit samples from wave RAM.
type WaveChannel struct {
	enabled    bool
	dacEnabled bool
	length     lengthCounter
	volumeCode uint8
	freq       uint16
	freqTimer  int
	position   uint8
	sample     uint8
	restart    bool

	ram [waveRAMSize]uint8
}

// WaveState is the persisted form of a WaveChannel, wave RAM included.
type WaveState struct {
	Enabled    bool
	DACEnabled bool
	Length     lengthCounter
	VolumeCode uint8
	Freq       uint16
	FreqTimer  int32
	Position   uint8
	Sample     uint8
	Restart    bool
	RAM        [waveRAMSize]uint8
}

// WaveInfo is the inspection view of the wave channel.
type WaveInfo struct {
	Enabled       bool
	DACEnabled    bool
	VolumePercent int
	LengthEnabled bool
	Frequency     uint16
	FrequencyHz   float64
	Position      uint8
	RAM           [waveRAMSize]uint8
}

func newWaveChannel() WaveChannel {
	return WaveChannel{length: lengthCounter{Max: waveLength}}
}

func (w *WaveChannel) writeDAC(value uint8) {
	w.dacEnabled = bit.IsSet(waveDACBit, value)
	if !w.dacEnabled {
		w.enabled = false
	}
}

func (w *WaveChannel) writeLength(value uint8) {
	w.length.load(uint16(value))
}

func (w *WaveChannel) writeVolume(value uint8) {
	w.volumeCode = (value >> 5) & 0x03
}

func (w *WaveChannel) writeFrequencyLow(value uint8) {
	w.freq = w.freq&0x700 | uint16(value)
}

func (w *WaveChannel) writeControl(value uint8) {
	w.freq = w.freq&0xFF | uint16(value&0x07)<<8
	w.length.Enabled = bit.IsSet(lengthEnableBit, value)
	w.restart = bit.IsSet(triggerBit, value)
	if w.restart {
		w.Trigger()
	}
}

func (w *WaveChannel) Trigger() {
	w.enabled = w.dacEnabled
	w.length.trigger()
	w.freqTimer = w.period()
	w.position = 0
}

func (w *WaveChannel) StepLength() {
	if w.length.step() {
		w.enabled = false
	}
}

func (w *WaveChannel) period() int {
	return (frequencyOffset - int(w.freq)) * 2
}

func (w *WaveChannel) Tick(cycles int) {
	w.freqTimer -= cycles
	for w.freqTimer <= 0 {
		w.freqTimer += w.period()
		w.position = (w.position + 1) & 31
		w.sample = w.sampleAt(w.position)
	}
}

// sampleAt returns the 4-bit sample at pos, high nibble first.
func (w *WaveChannel) sampleAt(pos uint8) uint8 {
	b := w.ram[pos/2]
	if pos&1 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func (w *WaveChannel) Output() uint8 {
	if !w.enabled {
		return 0
	}
	return w.sample >> waveVolumeShift[w.volumeCode]
}

func (w *WaveChannel) Enabled() bool { return w.enabled }

func (w *WaveChannel) Info() WaveInfo {
	percent := 0
	if shift := waveVolumeShift[w.volumeCode]; shift < 4 {
		percent = 100 >> shift
	}
	return WaveInfo{
		Enabled:       w.enabled,
		DACEnabled:    w.dacEnabled,
		VolumePercent: percent,
		LengthEnabled: w.length.Enabled,
		Frequency:     w.freq,
		FrequencyHz:   65536 / float64(frequencyOffset-int(w.freq)),
		Position:      w.position,
		RAM:           w.ram,
	}
}

func (w *WaveChannel) Snapshot() WaveState {
	return WaveState{
		Enabled:    w.enabled,
		DACEnabled: w.dacEnabled,
		Length:     w.length,
		VolumeCode: w.volumeCode,
		Freq:       w.freq,
		FreqTimer:  int32(w.freqTimer),
		Position:   w.position,
		Sample:     w.sample,
		Restart:    w.restart,
		RAM:        w.ram,
	}
}

func (w *WaveChannel) Restore(s WaveState) {
	w.enabled = s.Enabled
	w.dacEnabled = s.DACEnabled
	w.length = s.Length
	w.length.Max = waveLength
	w.volumeCode = s.VolumeCode & 0x03
	w.freq = s.Freq & maxFrequency
	w.freqTimer = int(s.FreqTimer)
	w.position = s.Position & 31
	w.sample = s.Sample & 0x0F
	w.restart = s.Restart
	w.ram = s.RAM
}
