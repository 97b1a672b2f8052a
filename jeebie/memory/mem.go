package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/audio"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/serial"
)

const cpuFrequency = 4194304

const oamDMALength = 160

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// Device is a component that owns a set of I/O registers.
type Device interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// MMU resolves every address of the 16-bit bus. Cartridge space is delegated to the
// MBC, I/O registers to the component that owns them, and everything else (VRAM, WRAM,
// OAM, HRAM) is backed by a flat 64KB image.
type MMU struct {
	cart      *Cartridge
	mbc       MBC
	memory    []byte
	regionMap [256]memRegion

	interrupts *interrupt.Controller
	APU        *audio.APU
	timer      Timer
	joypad     *Joypad
	serial     *serial.Port
	video      Device

	logger *slog.Logger
}

// State is the persisted part of the MMU that is not owned by another component.
type State struct {
	Memory [0x10000]byte
	Timer  TimerState
	Joypad JoypadState
}

type Option func(*MMU)

// WithLogger routes MMU and serial logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *MMU) { m.logger = l }
}

// New creates a memory unit with an empty cartridge, like powering on with nothing
// in the slot.
func New(opts ...Option) *MMU {
	return NewWithCartridge(NewCartridge(), opts...)
}

// NewWithCartridge creates a memory unit with cart mapped through its MBC.
func NewWithCartridge(cart *Cartridge, opts ...Option) *MMU {
	m := &MMU{
		cart:       cart,
		mbc:        cart.newMBC(),
		memory:     make([]byte, 0x10000),
		interrupts: interrupt.New(),
		APU:        audio.New(),
		joypad:     NewJoypad(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.serial = serial.New(func() { m.RequestInterrupt(interrupt.Serial) }, serial.WithLogger(m.logger))
	m.timer.InterruptHandler = func() { m.RequestInterrupt(interrupt.Timer) }
	m.joypad.InterruptHandler = func() { m.RequestInterrupt(interrupt.Joypad) }
	initRegionMap(m)

	return m
}

func initRegionMap(m *MMU) {
	for i := 0x00; i <= 0xFF; i++ {
		var r memRegion
		switch {
		case i <= 0x7F:
			r = regionROM
		case i <= 0x9F:
			r = regionVRAM
		case i <= 0xBF:
			r = regionExtRAM
		case i <= 0xDF:
			r = regionWRAM
		case i <= 0xFD:
			r = regionEcho
		case i == 0xFE:
			r = regionOAM
		default:
			r = regionIO
		}
		m.regionMap[i] = r
	}
}

// AttachVideo routes the LCD registers (except DMA) to d.
func (m *MMU) AttachVideo(d Device) {
	m.video = d
}

// Tick advances the components clocked by the memory bus: timer, serial port and
// cartridge clock.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
	m.serial.Tick(cycles)
	if c, ok := m.mbc.(clocked); ok {
		c.Tick(cycles)
	}
}

// SetTimerSeed initializes the system counter behind DIV.
func (m *MMU) SetTimerSeed(seed uint16) {
	m.timer.SetSeed(seed)
}

// ResetDivider clears DIV, as executing STOP does.
func (m *MMU) ResetDivider() {
	m.timer.ResetDivider()
}

func (m *MMU) RequestInterrupt(s interrupt.Source) {
	m.interrupts.Request(s)
}

func (m *MMU) Interrupts() *interrupt.Controller { return m.interrupts }

func (m *MMU) Cartridge() *Cartridge { return m.cart }

func (m *MMU) MBC() MBC { return m.mbc }

func (m *MMU) Timer() *Timer { return &m.timer }

func (m *MMU) Joypad() *Joypad { return m.joypad }

func (m *MMU) Serial() *serial.Port { return m.serial }

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		return m.mbc.Read(address)
	case regionVRAM, regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[addr.EchoMirror(address)]
	case regionOAM:
		if address <= addr.OAMEnd {
			return m.memory[address]
		}
		// 0xFEA0-0xFEFF is not usable
		return 0xFF
	default:
		return m.readIO(address)
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		m.mbc.Write(address, value)
	case regionVRAM, regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[addr.EchoMirror(address)] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			m.memory[address] = value
		}
	default:
		m.writeIO(address, value)
	}
}

func isTimerRegister(address uint16) bool {
	return address >= addr.DIV && address <= addr.TAC
}

func (m *MMU) isVideoRegister(address uint16) bool {
	return m.video != nil && address >= addr.LCDC && address <= addr.WX && address != addr.DMA
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case isTimerRegister(address):
		return m.timer.Read(address)
	case address == addr.IF:
		return m.interrupts.ReadFlags()
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return m.APU.ReadRegister(address)
	case m.isVideoRegister(address):
		return m.video.Read(address)
	case address >= addr.LCDC && address <= addr.WX:
		// DMA, or LCD registers with no PPU attached
		return m.memory[address]
	case address == addr.IE:
		return m.interrupts.ReadEnable()
	case address >= addr.HRAMStart:
		return m.memory[address]
	default:
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case isTimerRegister(address):
		m.timer.Write(address, value)
	case address == addr.IF:
		m.interrupts.WriteFlags(value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		m.APU.WriteRegister(address, value)
	case address == addr.DMA:
		m.runDMA(value)
	case m.isVideoRegister(address):
		m.video.Write(address, value)
	case address >= addr.LCDC && address <= addr.WX:
		m.memory[address] = value
	case address == addr.IE:
		m.interrupts.WriteEnable(value)
	case address >= addr.HRAMStart:
		m.memory[address] = value
	default:
		m.logger.Debug("write to unmapped I/O register", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	}
}

// runDMA copies 160 bytes from value<<8 into OAM at once.
func (m *MMU) runDMA(value byte) {
	source := uint16(value) << 8
	for i := range uint16(oamDMALength) {
		m.memory[addr.OAMStart+i] = m.Read(source + i)
	}
	m.memory[addr.DMA] = value
}

// Peek reads address without side effects. Reads never have side effects on this
// bus, so it matches what the CPU would see.
func (m *MMU) Peek(address uint16) byte {
	return m.Read(address)
}

// Poke is a debugging escape hatch. Cartridge space is written straight into the
// currently mapped ROM or RAM byte, skipping bank-control decoding and the RAM gate.
// Memory-backed regions are written directly. I/O registers have no storage of their
// own, so pokes there go through the owning component like a CPU write, side effects
// included: poking DIV resets the divider and poking DMA starts a transfer.
func (m *MMU) Poke(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		m.mbc.Poke(address, value)
	case regionVRAM, regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[addr.EchoMirror(address)] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			m.memory[address] = value
		}
	default:
		if address >= addr.HRAMStart && address != addr.IE {
			m.memory[address] = value
			return
		}
		m.writeIO(address, value)
	}
}

// PressKey and ReleaseKey update the joypad matrix.
func (m *MMU) PressKey(key JoypadKey) { m.joypad.Press(key) }

func (m *MMU) ReleaseKey(key JoypadKey) { m.joypad.Release(key) }

func (m *MMU) Snapshot() State {
	s := State{
		Timer:  m.timer.Snapshot(),
		Joypad: m.joypad.Snapshot(),
	}
	copy(s.Memory[:], m.memory)
	return s
}

func (m *MMU) Restore(s *State) {
	copy(m.memory, s.Memory[:])
	m.timer.Restore(s.Timer)
	m.joypad.Restore(s.Joypad)
}
