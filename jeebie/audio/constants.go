package audio

// Timing constants
// Reference: https://gbdev.io/pandocs/Audio_details.html
const (
	// cyclesPerStep is the number of CPU cycles per frame sequencer step.
	// The frame sequencer runs at 512 Hz: 4194304 Hz / 512 Hz = 8192 t-cycles
	cyclesPerStep = 8192

	// frequencyOffset turns an 11-bit frequency register into a timer period:
	// pulse period = (2048 - f) * 4 cycles, wave period = (2048 - f) * 2 cycles.
	frequencyOffset = 2048
	maxFrequency    = 2047
)

// Channel constants
const (
	// waveRAMSize is the size of wave pattern RAM in bytes (16 bytes = 32 samples)
	waveRAMSize = 16

	pulseLength = 64
	waveLength  = 256
	noiseLength = 64

	lfsrSeed = 0x7FFF
)

// Register bits
const (
	triggerBit       = 7
	lengthEnableBit  = 6
	envelopeIncrease = 3
	sweepDecrease    = 3
	waveDACBit       = 7
	noiseWidthBit    = 3
	powerBit         = 7
)

// dutyPatterns holds the 8-step waveform for each NRx1 duty setting, MSB first.
var dutyPatterns = [4]uint8{
	0b00000001, // 12.5%
	0b10000001, // 25%
	0b10000111, // 50%
	0b01111110, // 75%
}

var dutyPercents = [4]float64{12.5, 25, 50, 75}

// noiseDivisors maps the NR43 divisor code to a base period in cycles.
var noiseDivisors = [8]int{8, 16, 32, 48, 64, 80, 96, 112}

// waveVolumeShift maps the NR32 output level to a right shift (4 mutes).
var waveVolumeShift = [4]uint8{4, 0, 1, 2}

// readMasks holds the bits that always read as 1 for NR10..NR51 (FF10..FF25).
var readMasks = [0x16]uint8{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10-NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // unused, NR21-NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30-NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // unused, NR41-NR44
	0x00, 0x00, // NR50, NR51
}
