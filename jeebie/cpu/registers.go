package cpu

import "github.com/valerio/jeebie-core/jeebie/bit"

// Registers is a copy of the CPU register file.
type Registers struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

func (r Registers) AF() uint16 { return bit.Combine(r.A, r.F) }

func (r Registers) BC() uint16 { return bit.Combine(r.B, r.C) }

func (r Registers) DE() uint16 { return bit.Combine(r.D, r.E) }

func (r Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

func (c *CPU) Registers() Registers {
	return Registers{
		A: c.a, F: c.f,
		B: c.b, C: c.c,
		D: c.d, E: c.e,
		H: c.h, L: c.l,
		SP: c.sp, PC: c.pc,
	}
}

// SetRegisters overwrites the register file. The low nibble of F is always zero.
func (c *CPU) SetRegisters(r Registers) {
	c.a, c.f = r.A, r.F&0xF0
	c.b, c.c = r.B, r.C
	c.d, c.e = r.D, r.E
	c.h, c.l = r.H, r.L
	c.sp, c.pc = r.SP, r.PC
}
