package cpu

import (
	"errors"
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// ErrIllegalInstruction is returned when the CPU fetches one of the eleven opcodes
// that do not exist on the SM83. The CPU locks up until it is reset or restored.
var ErrIllegalInstruction = errors.New("illegal instruction")

// Bus is what the CPU needs from the rest of the machine.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	Interrupts() *interrupt.Controller
	// ResetDivider clears the timer's system counter (STOP does this).
	ResetDivider()
}

// Flag is one of the 4 possible flags used in the flag register (high part of AF)
type Flag uint8

const (
	ZeroFlag      Flag = 0x80
	SubFlag       Flag = 0x40
	HalfCarryFlag Flag = 0x20
	CarryFlag     Flag = 0x10
)

const (
	interruptCycles = 20
	idleCycles      = 4
)

// CPU is the SM83 core.
type CPU struct {
	// registers
	a  uint8
	f  uint8
	b  uint8
	c  uint8
	d  uint8
	e  uint8
	h  uint8
	l  uint8
	sp uint16
	pc uint16

	halted  bool
	stopped bool
	locked  bool

	// eiDelay counts the instructions left before EI takes effect.
	eiDelay uint8

	// haltBug makes the next fetch read the opcode without incrementing PC.
	haltBug        bool
	haltBugEnabled bool

	// branched is set by conditional instructions that took their branch.
	branched      bool
	currentOpcode uint16
	cycles        uint64

	bus        Bus
	interrupts *interrupt.Controller
}

// State is the persisted form of the CPU.
type State struct {
	Registers
	Halted        bool
	Stopped       bool
	Locked        bool
	HaltBug       bool
	EIDelay       uint8
	CurrentOpcode uint16
	Cycles        uint64
}

type Option func(*CPU)

// WithHaltBug toggles emulation of the HALT bug: HALT executed with IME off and an
// interrupt pending does not halt, and the following byte is read twice.
func WithHaltBug(enabled bool) Option {
	return func(c *CPU) {
		c.haltBugEnabled = enabled
	}
}

func initializeMemory(bus Bus) {
	bus.Write(addr.P1, 0xCF)
	bus.Write(addr.TIMA, 0x00)
	bus.Write(addr.TMA, 0x00)
	bus.Write(addr.TAC, 0x00)
	bus.Write(addr.NR10, 0x80)
	bus.Write(addr.NR11, 0xBF)
	bus.Write(addr.NR12, 0xF3)
	bus.Write(addr.NR14, 0xBF)
	bus.Write(addr.NR21, 0x3F)
	bus.Write(addr.NR22, 0x00)
	bus.Write(addr.NR24, 0xBF)
	bus.Write(addr.NR30, 0x7F)
	bus.Write(addr.NR31, 0xFF)
	bus.Write(addr.NR32, 0x9F)
	bus.Write(addr.NR34, 0xBF)
	bus.Write(addr.NR41, 0xFF)
	bus.Write(addr.NR42, 0x00)
	bus.Write(addr.NR43, 0x00)
	bus.Write(addr.NR44, 0xBF)
	bus.Write(addr.NR50, 0x77)
	bus.Write(addr.NR51, 0xF3)
	bus.Write(addr.NR52, 0xF1)
	bus.Write(addr.LCDC, 0x91)
	bus.Write(addr.SCY, 0x00)
	bus.Write(addr.SCX, 0x00)
	bus.Write(addr.LYC, 0x00)
	bus.Write(addr.BGP, 0xFC)
	bus.Write(addr.OBP0, 0xFF)
	bus.Write(addr.OBP1, 0xFF)
	bus.Write(addr.WY, 0x00)
	bus.Write(addr.WX, 0x00)
	bus.Write(addr.IE, 0x00)
}

// New returns a CPU in the state the DMG boot ROM leaves behind, and writes the
// matching post-boot I/O register values through the bus.
func New(bus Bus, opts ...Option) *CPU {
	initializeMemory(bus)

	cpu := &CPU{
		bus:            bus,
		interrupts:     bus.Interrupts(),
		haltBugEnabled: true,
	}
	for _, opt := range opts {
		opt(cpu)
	}

	cpu.setAF(0x01B0)
	cpu.setBC(0x0013)
	cpu.setDE(0x00D8)
	cpu.setHL(0x014D)
	cpu.sp = 0xFFFE
	cpu.pc = 0x0100

	return cpu
}

// Step services a pending interrupt or executes one instruction and returns the
// T-cycles it took. A halted or stopped CPU idles for 4 cycles.
func (c *CPU) Step() (int, error) {
	if c.locked {
		return 0, c.illegalInstruction()
	}

	if c.stopped {
		// only a joypad request ends STOP, enabled or not
		if !c.interrupts.Requested(interrupt.Joypad) {
			c.cycles += idleCycles
			return idleCycles, nil
		}
		c.stopped = false
	}

	if c.halted {
		if !c.interrupts.Pending() {
			c.cycles += idleCycles
			return idleCycles, nil
		}
		c.halted = false
	}

	if c.interrupts.IME() && c.interrupts.Pending() {
		c.serviceInterrupt()
		c.cycles += interruptCycles
		return interruptCycles, nil
	}

	opcode := c.bus.Read(c.pc)
	if isIllegal(opcode) {
		c.currentOpcode = uint16(opcode)
		c.locked = true
		return 0, c.illegalInstruction()
	}

	if c.haltBug {
		c.haltBug = false
	} else {
		c.pc++
	}

	var cycles int
	if opcode == 0xCB {
		cb := c.readImmediate()
		c.currentOpcode = bit.Combine(0xCB, cb)
		opcodesCB[cb](c)
		cycles = cbOpcodeCycles[cb]
	} else {
		c.currentOpcode = uint16(opcode)
		c.branched = false
		opcodes[opcode](c)
		cycles = opcodeCycles[opcode]
		if c.branched {
			cycles = opcodeBranchCycles[opcode]
		}
	}

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.interrupts.SetIME(true)
		}
	}

	c.cycles += uint64(cycles)
	return cycles, nil
}

// serviceInterrupt pushes PC and jumps to the vector of the highest priority
// pending interrupt, clearing its IF bit and IME.
func (c *CPU) serviceInterrupt() {
	source, ok := c.interrupts.Acknowledge()
	if !ok {
		return
	}
	c.interrupts.SetIME(false)
	c.eiDelay = 0
	c.pushStack(c.pc)
	c.pc = source.Vector()
}

func (c *CPU) illegalInstruction() error {
	return fmt.Errorf("%w: opcode 0x%02X at 0x%04X", ErrIllegalInstruction, c.currentOpcode, c.pc)
}

// peekImmediate returns the byte at the memory address pointed by the PC
// this value is known as immediate ('n' in mnemonics), some opcodes use it as a parameter
func (c *CPU) peekImmediate() uint8 {
	return c.bus.Read(c.pc)
}

// peekImmediateWord returns the two bytes at the memory address pointed by PC and PC+1
func (c *CPU) peekImmediateWord() uint16 {
	low := c.bus.Read(c.pc)
	high := c.bus.Read(c.pc + 1)
	return bit.Combine(high, low)
}

// readImmediate acts similarly as its peek counterpart, but increments the PC once after reading
func (c *CPU) readImmediate() uint8 {
	n := c.peekImmediate()
	c.pc++
	return n
}

// readImmediateWord acts similarly as its peek counterpart, but increments the PC twice after reading
func (c *CPU) readImmediateWord() uint16 {
	nn := c.peekImmediateWord()
	c.pc += 2
	return nn
}

func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &= uint8(flag ^ 0xFF)
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

// flagToBit will return 1 if the passed flag is set, 0 otherwise
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if !condition {
		c.resetFlag(flag)
		return
	}
	c.setFlag(flag)
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	// F register lower 4 bits must be 0
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, c.f)
}

// Flag reports whether flag is set.
func (c *CPU) Flag(flag Flag) bool { return c.isSetFlag(flag) }

// SetFlag sets or clears flag.
func (c *CPU) SetFlag(flag Flag, on bool) { c.setFlagToCondition(flag, on) }

func (c *CPU) PC() uint16 { return c.pc }

func (c *CPU) SP() uint16 { return c.sp }

func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) Stopped() bool { return c.stopped }

// Locked reports whether an illegal opcode has hung the CPU.
func (c *CPU) Locked() bool { return c.locked }

// Cycles is the number of T-cycles executed since power on.
func (c *CPU) Cycles() uint64 { return c.cycles }

// CurrentOpcode is the last fetched opcode, 0xCBxx for prefixed ones.
func (c *CPU) CurrentOpcode() uint16 { return c.currentOpcode }

// FlagString renders F as "ZNHC" with '-' for cleared flags.
func (c *CPU) FlagString() string {
	flags := []byte("----")
	for i, f := range []Flag{ZeroFlag, SubFlag, HalfCarryFlag, CarryFlag} {
		if c.isSetFlag(f) {
			flags[i] = "ZNHC"[i]
		}
	}
	return string(flags)
}

func (c *CPU) Snapshot() State {
	return State{
		Registers:     c.Registers(),
		Halted:        c.halted,
		Stopped:       c.stopped,
		Locked:        c.locked,
		HaltBug:       c.haltBug,
		EIDelay:       c.eiDelay,
		CurrentOpcode: c.currentOpcode,
		Cycles:        c.cycles,
	}
}

func (c *CPU) Restore(s State) {
	c.SetRegisters(s.Registers)
	c.halted = s.Halted
	c.stopped = s.Stopped
	c.locked = s.Locked
	c.haltBug = s.HaltBug
	c.eiDelay = s.EIDelay
	c.currentOpcode = s.CurrentOpcode
	c.cycles = s.Cycles
}
