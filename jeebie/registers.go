package jeebie

import (
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/cpu"
)

// Registers returns a copy of the CPU register file.
func (d *DMG) Registers() cpu.Registers { return d.cpu.Registers() }

// SetRegisters overwrites the whole register file. The low nibble of F stays zero.
func (d *DMG) SetRegisters(r cpu.Registers) { d.cpu.SetRegisters(r) }

func (d *DMG) update(change func(r *cpu.Registers)) {
	r := d.cpu.Registers()
	change(&r)
	d.cpu.SetRegisters(r)
}

func (d *DMG) A() uint8 { return d.cpu.Registers().A }
func (d *DMG) F() uint8 { return d.cpu.Registers().F }
func (d *DMG) B() uint8 { return d.cpu.Registers().B }
func (d *DMG) C() uint8 { return d.cpu.Registers().C }
func (d *DMG) D() uint8 { return d.cpu.Registers().D }
func (d *DMG) E() uint8 { return d.cpu.Registers().E }
func (d *DMG) H() uint8 { return d.cpu.Registers().H }
func (d *DMG) L() uint8 { return d.cpu.Registers().L }

func (d *DMG) SetA(v uint8) { d.update(func(r *cpu.Registers) { r.A = v }) }
func (d *DMG) SetF(v uint8) { d.update(func(r *cpu.Registers) { r.F = v }) }
func (d *DMG) SetB(v uint8) { d.update(func(r *cpu.Registers) { r.B = v }) }
func (d *DMG) SetC(v uint8) { d.update(func(r *cpu.Registers) { r.C = v }) }
func (d *DMG) SetD(v uint8) { d.update(func(r *cpu.Registers) { r.D = v }) }
func (d *DMG) SetE(v uint8) { d.update(func(r *cpu.Registers) { r.E = v }) }
func (d *DMG) SetH(v uint8) { d.update(func(r *cpu.Registers) { r.H = v }) }
func (d *DMG) SetL(v uint8) { d.update(func(r *cpu.Registers) { r.L = v }) }

func (d *DMG) PC() uint16 { return d.cpu.PC() }
func (d *DMG) SP() uint16 { return d.cpu.SP() }
func (d *DMG) BC() uint16 { return d.cpu.Registers().BC() }
func (d *DMG) DE() uint16 { return d.cpu.Registers().DE() }
func (d *DMG) HL() uint16 { return d.cpu.Registers().HL() }

// SetPC moves execution. A breakpoint at the new address is honoured.
func (d *DMG) SetPC(v uint16) {
	d.update(func(r *cpu.Registers) { r.PC = v })
	d.resumeFrom = -1
}

func (d *DMG) SetSP(v uint16) { d.update(func(r *cpu.Registers) { r.SP = v }) }
func (d *DMG) SetBC(v uint16) { d.update(func(r *cpu.Registers) { r.B, r.C = bit.Split(v) }) }
func (d *DMG) SetDE(v uint16) { d.update(func(r *cpu.Registers) { r.D, r.E = bit.Split(v) }) }
func (d *DMG) SetHL(v uint16) { d.update(func(r *cpu.Registers) { r.H, r.L = bit.Split(v) }) }

// flags

func (d *DMG) FlagZ() bool { return d.cpu.Flag(cpu.ZeroFlag) }
func (d *DMG) FlagN() bool { return d.cpu.Flag(cpu.SubFlag) }
func (d *DMG) FlagH() bool { return d.cpu.Flag(cpu.HalfCarryFlag) }
func (d *DMG) FlagC() bool { return d.cpu.Flag(cpu.CarryFlag) }

func (d *DMG) SetFlagZ(on bool) { d.cpu.SetFlag(cpu.ZeroFlag, on) }
func (d *DMG) SetFlagN(on bool) { d.cpu.SetFlag(cpu.SubFlag, on) }
func (d *DMG) SetFlagH(on bool) { d.cpu.SetFlag(cpu.HalfCarryFlag, on) }
func (d *DMG) SetFlagC(on bool) { d.cpu.SetFlag(cpu.CarryFlag, on) }

// FlagString renders the flags as "ZNHC", with '-' for cleared ones.
func (d *DMG) FlagString() string { return d.cpu.FlagString() }

func (d *DMG) IME() bool { return d.mem.Interrupts().IME() }

func (d *DMG) SetIME(on bool) { d.mem.Interrupts().SetIME(on) }
