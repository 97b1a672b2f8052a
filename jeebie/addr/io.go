package addr

// memory regions
const (
	ROMBank0Start   uint16 = 0x0000
	ROMBankNStart   uint16 = 0x4000
	VRAMStart       uint16 = 0x8000
	ExternalRAM     uint16 = 0xA000
	WRAMStart       uint16 = 0xC000
	EchoStart       uint16 = 0xE000
	EchoEnd         uint16 = 0xFDFF
	UnusableStart   uint16 = 0xFEA0
	UnusableEnd     uint16 = 0xFEFF
	IOStart         uint16 = 0xFF00
	HRAMStart       uint16 = 0xFF80
	HRAMEnd         uint16 = 0xFFFE
	echoMirrorDelta uint16 = 0x2000
)

// EchoMirror returns the work RAM address an echo RAM address mirrors.
func EchoMirror(address uint16) uint16 {
	return address - echoMirrorDelta
}

// lcd registers, owned by the PPU
const (
	// LCDC is the LCD control register.
	LCDC uint16 = 0xFF40
	// STAT is the LCD status register.
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	// LY is the current scanline, read only.
	LY  uint16 = 0xFF44
	LYC uint16 = 0xFF45
	// DMA starts an OAM transfer from (value << 8).
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// Audio registers, owned by the APU.
// Reference: https://gbdev.io/pandocs/Audio_Registers.html
const (
	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F

	NR10 uint16 = 0xFF10 // pulse 1 sweep
	NR11 uint16 = 0xFF11 // pulse 1 duty and length
	NR12 uint16 = 0xFF12 // pulse 1 envelope
	NR13 uint16 = 0xFF13 // pulse 1 frequency low
	NR14 uint16 = 0xFF14 // pulse 1 frequency high and control

	NR21 uint16 = 0xFF16
	NR22 uint16 = 0xFF17
	NR23 uint16 = 0xFF18
	NR24 uint16 = 0xFF19

	NR30 uint16 = 0xFF1A // wave DAC
	NR31 uint16 = 0xFF1B
	NR32 uint16 = 0xFF1C // wave output level
	NR33 uint16 = 0xFF1D
	NR34 uint16 = 0xFF1E

	NR41 uint16 = 0xFF20
	NR42 uint16 = 0xFF21
	NR43 uint16 = 0xFF22 // noise clock and LFSR width
	NR44 uint16 = 0xFF23

	NR50 uint16 = 0xFF24 // master volume
	NR51 uint16 = 0xFF25 // panning
	NR52 uint16 = 0xFF26 // power and channel status

	WaveRAMStart uint16 = 0xFF30
	WaveRAMEnd   uint16 = 0xFF3F
)

// OAM holds 40 sprites of 4 bytes each.
const (
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
)

// tile data and tile maps
const (
	// TileData0 is the unsigned tile data base (tiles 0-255).
	TileData0 uint16 = 0x8000
	// TileData1 holds tiles -128..-1 in signed addressing.
	TileData1 uint16 = 0x8800
	// TileData2 is the signed addressing base (tile 0).
	TileData2 uint16 = 0x9000

	TileMap0 uint16 = 0x9800
	TileMap1 uint16 = 0x9C00
)

// interrupts
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// P1 selects and reads the joypad matrix.
const P1 uint16 = 0xFF00

// serial I/O
const (
	// SB holds the byte being shifted out; after a transfer it holds the received byte
	// (0xFF with nothing on the other end of the link).
	SB uint16 = 0xFF01
	// SC bit 7 starts a transfer and is cleared on completion, bit 0 selects the internal clock.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV is the upper byte of the system counter. Any write resets it.
	DIV uint16 = 0xFF04
	// TIMA counts at the TAC rate and requests an interrupt on overflow.
	TIMA uint16 = 0xFF05
	// TMA is loaded into TIMA on overflow.
	TMA uint16 = 0xFF06
	// TAC enables the timer (bit 2) and selects its rate (bits 0-1).
	TAC uint16 = 0xFF07
)
