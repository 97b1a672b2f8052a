package cpu

import "github.com/valerio/jeebie-core/jeebie/bit"

// NOP
// 0x00:
func opcode0x00(_ *CPU) {}

// LD BC, nn
// 0x01:
func opcode0x01(c *CPU) {
	c.setBC(c.readImmediateWord())
}

// LD (BC), A
// 0x02:
func opcode0x02(c *CPU) {
	c.bus.Write(c.getBC(), c.a)
}

// INC BC
// 0x03:
func opcode0x03(c *CPU) {
	c.setBC(c.getBC() + 1)
}

// INC B
// 0x04:
func opcode0x04(c *CPU) {
	c.inc(&c.b)
}

// DEC B
// 0x05:
func opcode0x05(c *CPU) {
	c.dec(&c.b)
}

// LD B, n
// 0x06:
func opcode0x06(c *CPU) {
	c.b = c.readImmediate()
}

// RLCA
// 0x07:
func opcode0x07(c *CPU) {
	c.rlc(&c.a)
	c.resetFlag(ZeroFlag)
}

// LD (nn), SP
// 0x08:
func opcode0x08(c *CPU) {
	address := c.readImmediateWord()
	c.bus.Write(address, bit.Low(c.sp))
	c.bus.Write(address+1, bit.High(c.sp))
}

// ADD HL, BC
// 0x09:
func opcode0x09(c *CPU) {
	c.addToHL(c.getBC())
}

// LD A, (BC)
// 0x0A:
func opcode0x0A(c *CPU) {
	c.a = c.bus.Read(c.getBC())
}

// DEC BC
// 0x0B:
func opcode0x0B(c *CPU) {
	c.setBC(c.getBC() - 1)
}

// INC C
// 0x0C:
func opcode0x0C(c *CPU) {
	c.inc(&c.c)
}

// DEC C
// 0x0D:
func opcode0x0D(c *CPU) {
	c.dec(&c.c)
}

// LD C, n
// 0x0E:
func opcode0x0E(c *CPU) {
	c.c = c.readImmediate()
}

// RRCA
// 0x0F:
func opcode0x0F(c *CPU) {
	c.rrc(&c.a)
	c.resetFlag(ZeroFlag)
}

// STOP
// 0x10:
func opcode0x10(c *CPU) {
	c.stop()
}

// LD DE, nn
// 0x11:
func opcode0x11(c *CPU) {
	c.setDE(c.readImmediateWord())
}

// LD (DE), A
// 0x12:
func opcode0x12(c *CPU) {
	c.bus.Write(c.getDE(), c.a)
}

// INC DE
// 0x13:
func opcode0x13(c *CPU) {
	c.setDE(c.getDE() + 1)
}

// INC D
// 0x14:
func opcode0x14(c *CPU) {
	c.inc(&c.d)
}

// DEC D
// 0x15:
func opcode0x15(c *CPU) {
	c.dec(&c.d)
}

// LD D, n
// 0x16:
func opcode0x16(c *CPU) {
	c.d = c.readImmediate()
}

// RLA
// 0x17:
func opcode0x17(c *CPU) {
	c.rl(&c.a)
	c.resetFlag(ZeroFlag)
}

// JR n
// 0x18:
func opcode0x18(c *CPU) {
	c.jr()
}

// ADD HL, DE
// 0x19:
func opcode0x19(c *CPU) {
	c.addToHL(c.getDE())
}

// LD A, (DE)
// 0x1A:
func opcode0x1A(c *CPU) {
	c.a = c.bus.Read(c.getDE())
}

// DEC DE
// 0x1B:
func opcode0x1B(c *CPU) {
	c.setDE(c.getDE() - 1)
}

// INC E
// 0x1C:
func opcode0x1C(c *CPU) {
	c.inc(&c.e)
}

// DEC E
// 0x1D:
func opcode0x1D(c *CPU) {
	c.dec(&c.e)
}

// LD E, n
// 0x1E:
func opcode0x1E(c *CPU) {
	c.e = c.readImmediate()
}

// RRA
// 0x1F:
func opcode0x1F(c *CPU) {
	c.rr(&c.a)
	c.resetFlag(ZeroFlag)
}

// JR NZ, n
// 0x20:
func opcode0x20(c *CPU) {
	c.jrIf(!c.isSetFlag(ZeroFlag))
}

// LD HL, nn
// 0x21:
func opcode0x21(c *CPU) {
	c.setHL(c.readImmediateWord())
}

// LD (HL+), A
// 0x22:
func opcode0x22(c *CPU) {
	hl := c.getHL()
	c.bus.Write(hl, c.a)
	c.setHL(hl + 1)
}

// INC HL
// 0x23:
func opcode0x23(c *CPU) {
	c.setHL(c.getHL() + 1)
}

// INC H
// 0x24:
func opcode0x24(c *CPU) {
	c.inc(&c.h)
}

// DEC H
// 0x25:
func opcode0x25(c *CPU) {
	c.dec(&c.h)
}

// LD H, n
// 0x26:
func opcode0x26(c *CPU) {
	c.h = c.readImmediate()
}

// DAA
// 0x27:
func opcode0x27(c *CPU) {
	c.daa()
}

// JR Z, n
// 0x28:
func opcode0x28(c *CPU) {
	c.jrIf(c.isSetFlag(ZeroFlag))
}

// ADD HL, HL
// 0x29:
func opcode0x29(c *CPU) {
	c.addToHL(c.getHL())
}

// LD A, (HL+)
// 0x2A:
func opcode0x2A(c *CPU) {
	hl := c.getHL()
	c.a = c.bus.Read(hl)
	c.setHL(hl + 1)
}

// DEC HL
// 0x2B:
func opcode0x2B(c *CPU) {
	c.setHL(c.getHL() - 1)
}

// INC L
// 0x2C:
func opcode0x2C(c *CPU) {
	c.inc(&c.l)
}

// DEC L
// 0x2D:
func opcode0x2D(c *CPU) {
	c.dec(&c.l)
}

// LD L, n
// 0x2E:
func opcode0x2E(c *CPU) {
	c.l = c.readImmediate()
}

// CPL
// 0x2F:
func opcode0x2F(c *CPU) {
	c.cpl()
}

// JR NC, n
// 0x30:
func opcode0x30(c *CPU) {
	c.jrIf(!c.isSetFlag(CarryFlag))
}

// LD SP, nn
// 0x31:
func opcode0x31(c *CPU) {
	c.sp = c.readImmediateWord()
}

// LD (HL-), A
// 0x32:
func opcode0x32(c *CPU) {
	hl := c.getHL()
	c.bus.Write(hl, c.a)
	c.setHL(hl - 1)
}

// INC SP
// 0x33:
func opcode0x33(c *CPU) {
	c.sp = c.sp + 1
}

// INC (HL)
// 0x34:
func opcode0x34(c *CPU) {
	address := c.getHL()
	value := c.bus.Read(address)
	c.inc(&value)
	c.bus.Write(address, value)
}

// DEC (HL)
// 0x35:
func opcode0x35(c *CPU) {
	address := c.getHL()
	value := c.bus.Read(address)
	c.dec(&value)
	c.bus.Write(address, value)
}

// LD (HL), n
// 0x36:
func opcode0x36(c *CPU) {
	c.bus.Write(c.getHL(), c.readImmediate())
}

// SCF
// 0x37:
func opcode0x37(c *CPU) {
	c.scf()
}

// JR C, n
// 0x38:
func opcode0x38(c *CPU) {
	c.jrIf(c.isSetFlag(CarryFlag))
}

// ADD HL, SP
// 0x39:
func opcode0x39(c *CPU) {
	c.addToHL(c.sp)
}

// LD A, (HL-)
// 0x3A:
func opcode0x3A(c *CPU) {
	hl := c.getHL()
	c.a = c.bus.Read(hl)
	c.setHL(hl - 1)
}

// DEC SP
// 0x3B:
func opcode0x3B(c *CPU) {
	c.sp = c.sp - 1
}

// INC A
// 0x3C:
func opcode0x3C(c *CPU) {
	c.inc(&c.a)
}

// DEC A
// 0x3D:
func opcode0x3D(c *CPU) {
	c.dec(&c.a)
}

// LD A, n
// 0x3E:
func opcode0x3E(c *CPU) {
	c.a = c.readImmediate()
}

// CCF
// 0x3F:
func opcode0x3F(c *CPU) {
	c.ccf()
}

// LD B, B
// 0x40:
func opcode0x40(_ *CPU) {}

// LD B, C
// 0x41:
func opcode0x41(c *CPU) {
	c.b = c.c
}

// LD B, D
// 0x42:
func opcode0x42(c *CPU) {
	c.b = c.d
}

// LD B, E
// 0x43:
func opcode0x43(c *CPU) {
	c.b = c.e
}

// LD B, H
// 0x44:
func opcode0x44(c *CPU) {
	c.b = c.h
}

// LD B, L
// 0x45:
func opcode0x45(c *CPU) {
	c.b = c.l
}

// LD B, (HL)
// 0x46:
func opcode0x46(c *CPU) {
	c.b = c.bus.Read(c.getHL())
}

// LD B, A
// 0x47:
func opcode0x47(c *CPU) {
	c.b = c.a
}

// LD C, B
// 0x48:
func opcode0x48(c *CPU) {
	c.c = c.b
}

// LD C, C
// 0x49:
func opcode0x49(_ *CPU) {}

// LD C, D
// 0x4A:
func opcode0x4A(c *CPU) {
	c.c = c.d
}

// LD C, E
// 0x4B:
func opcode0x4B(c *CPU) {
	c.c = c.e
}

// LD C, H
// 0x4C:
func opcode0x4C(c *CPU) {
	c.c = c.h
}

// LD C, L
// 0x4D:
func opcode0x4D(c *CPU) {
	c.c = c.l
}

// LD C, (HL)
// 0x4E:
func opcode0x4E(c *CPU) {
	c.c = c.bus.Read(c.getHL())
}

// LD C, A
// 0x4F:
func opcode0x4F(c *CPU) {
	c.c = c.a
}

// LD D, B
// 0x50:
func opcode0x50(c *CPU) {
	c.d = c.b
}

// LD D, C
// 0x51:
func opcode0x51(c *CPU) {
	c.d = c.c
}

// LD D, D
// 0x52:
func opcode0x52(_ *CPU) {}

// LD D, E
// 0x53:
func opcode0x53(c *CPU) {
	c.d = c.e
}

// LD D, H
// 0x54:
func opcode0x54(c *CPU) {
	c.d = c.h
}

// LD D, L
// 0x55:
func opcode0x55(c *CPU) {
	c.d = c.l
}

// LD D, (HL)
// 0x56:
func opcode0x56(c *CPU) {
	c.d = c.bus.Read(c.getHL())
}

// LD D, A
// 0x57:
func opcode0x57(c *CPU) {
	c.d = c.a
}

// LD E, B
// 0x58:
func opcode0x58(c *CPU) {
	c.e = c.b
}

// LD E, C
// 0x59:
func opcode0x59(c *CPU) {
	c.e = c.c
}

// LD E, D
// 0x5A:
func opcode0x5A(c *CPU) {
	c.e = c.d
}

// LD E, E
// 0x5B:
func opcode0x5B(_ *CPU) {}

// LD E, H
// 0x5C:
func opcode0x5C(c *CPU) {
	c.e = c.h
}

// LD E, L
// 0x5D:
func opcode0x5D(c *CPU) {
	c.e = c.l
}

// LD E, (HL)
// 0x5E:
func opcode0x5E(c *CPU) {
	c.e = c.bus.Read(c.getHL())
}

// LD E, A
// 0x5F:
func opcode0x5F(c *CPU) {
	c.e = c.a
}

// LD H, B
// 0x60:
func opcode0x60(c *CPU) {
	c.h = c.b
}

// LD H, C
// 0x61:
func opcode0x61(c *CPU) {
	c.h = c.c
}

// LD H, D
// 0x62:
func opcode0x62(c *CPU) {
	c.h = c.d
}

// LD H, E
// 0x63:
func opcode0x63(c *CPU) {
	c.h = c.e
}

// LD H, H
// 0x64:
func opcode0x64(_ *CPU) {}

// LD H, L
// 0x65:
func opcode0x65(c *CPU) {
	c.h = c.l
}

// LD H, (HL)
// 0x66:
func opcode0x66(c *CPU) {
	c.h = c.bus.Read(c.getHL())
}

// LD H, A
// 0x67:
func opcode0x67(c *CPU) {
	c.h = c.a
}

// LD L, B
// 0x68:
func opcode0x68(c *CPU) {
	c.l = c.b
}

// LD L, C
// 0x69:
func opcode0x69(c *CPU) {
	c.l = c.c
}

// LD L, D
// 0x6A:
func opcode0x6A(c *CPU) {
	c.l = c.d
}

// LD L, E
// 0x6B:
func opcode0x6B(c *CPU) {
	c.l = c.e
}

// LD L, H
// 0x6C:
func opcode0x6C(c *CPU) {
	c.l = c.h
}

// LD L, L
// 0x6D:
func opcode0x6D(_ *CPU) {}

// LD L, (HL)
// 0x6E:
func opcode0x6E(c *CPU) {
	c.l = c.bus.Read(c.getHL())
}

// LD L, A
// 0x6F:
func opcode0x6F(c *CPU) {
	c.l = c.a
}

// LD (HL), B
// 0x70:
func opcode0x70(c *CPU) {
	c.bus.Write(c.getHL(), c.b)
}

// LD (HL), C
// 0x71:
func opcode0x71(c *CPU) {
	c.bus.Write(c.getHL(), c.c)
}

// LD (HL), D
// 0x72:
func opcode0x72(c *CPU) {
	c.bus.Write(c.getHL(), c.d)
}

// LD (HL), E
// 0x73:
func opcode0x73(c *CPU) {
	c.bus.Write(c.getHL(), c.e)
}

// LD (HL), H
// 0x74:
func opcode0x74(c *CPU) {
	c.bus.Write(c.getHL(), c.h)
}

// LD (HL), L
// 0x75:
func opcode0x75(c *CPU) {
	c.bus.Write(c.getHL(), c.l)
}

// HALT
// 0x76:
func opcode0x76(c *CPU) {
	c.halt()
}

// LD (HL), A
// 0x77:
func opcode0x77(c *CPU) {
	c.bus.Write(c.getHL(), c.a)
}

// LD A, B
// 0x78:
func opcode0x78(c *CPU) {
	c.a = c.b
}

// LD A, C
// 0x79:
func opcode0x79(c *CPU) {
	c.a = c.c
}

// LD A, D
// 0x7A:
func opcode0x7A(c *CPU) {
	c.a = c.d
}

// LD A, E
// 0x7B:
func opcode0x7B(c *CPU) {
	c.a = c.e
}

// LD A, H
// 0x7C:
func opcode0x7C(c *CPU) {
	c.a = c.h
}

// LD A, L
// 0x7D:
func opcode0x7D(c *CPU) {
	c.a = c.l
}

// LD A, (HL)
// 0x7E:
func opcode0x7E(c *CPU) {
	c.a = c.bus.Read(c.getHL())
}

// LD A, A
// 0x7F:
func opcode0x7F(_ *CPU) {}

// ADD A, B
// 0x80:
func opcode0x80(c *CPU) {
	c.addToA(c.b)
}

// ADD A, C
// 0x81:
func opcode0x81(c *CPU) {
	c.addToA(c.c)
}

// ADD A, D
// 0x82:
func opcode0x82(c *CPU) {
	c.addToA(c.d)
}

// ADD A, E
// 0x83:
func opcode0x83(c *CPU) {
	c.addToA(c.e)
}

// ADD A, H
// 0x84:
func opcode0x84(c *CPU) {
	c.addToA(c.h)
}

// ADD A, L
// 0x85:
func opcode0x85(c *CPU) {
	c.addToA(c.l)
}

// ADD A, (HL)
// 0x86:
func opcode0x86(c *CPU) {
	c.addToA(c.bus.Read(c.getHL()))
}

// ADD A, A
// 0x87:
func opcode0x87(c *CPU) {
	c.addToA(c.a)
}

// ADC A, B
// 0x88:
func opcode0x88(c *CPU) {
	c.adc(c.b)
}

// ADC A, C
// 0x89:
func opcode0x89(c *CPU) {
	c.adc(c.c)
}

// ADC A, D
// 0x8A:
func opcode0x8A(c *CPU) {
	c.adc(c.d)
}

// ADC A, E
// 0x8B:
func opcode0x8B(c *CPU) {
	c.adc(c.e)
}

// ADC A, H
// 0x8C:
func opcode0x8C(c *CPU) {
	c.adc(c.h)
}

// ADC A, L
// 0x8D:
func opcode0x8D(c *CPU) {
	c.adc(c.l)
}

// ADC A, (HL)
// 0x8E:
func opcode0x8E(c *CPU) {
	c.adc(c.bus.Read(c.getHL()))
}

// ADC A, A
// 0x8F:
func opcode0x8F(c *CPU) {
	c.adc(c.a)
}

// SUB B
// 0x90:
func opcode0x90(c *CPU) {
	c.sub(c.b)
}

// SUB C
// 0x91:
func opcode0x91(c *CPU) {
	c.sub(c.c)
}

// SUB D
// 0x92:
func opcode0x92(c *CPU) {
	c.sub(c.d)
}

// SUB E
// 0x93:
func opcode0x93(c *CPU) {
	c.sub(c.e)
}

// SUB H
// 0x94:
func opcode0x94(c *CPU) {
	c.sub(c.h)
}

// SUB L
// 0x95:
func opcode0x95(c *CPU) {
	c.sub(c.l)
}

// SUB (HL)
// 0x96:
func opcode0x96(c *CPU) {
	c.sub(c.bus.Read(c.getHL()))
}

// SUB A
// 0x97:
func opcode0x97(c *CPU) {
	c.sub(c.a)
}

// SBC A, B
// 0x98:
func opcode0x98(c *CPU) {
	c.sbc(c.b)
}

// SBC A, C
// 0x99:
func opcode0x99(c *CPU) {
	c.sbc(c.c)
}

// SBC A, D
// 0x9A:
func opcode0x9A(c *CPU) {
	c.sbc(c.d)
}

// SBC A, E
// 0x9B:
func opcode0x9B(c *CPU) {
	c.sbc(c.e)
}

// SBC A, H
// 0x9C:
func opcode0x9C(c *CPU) {
	c.sbc(c.h)
}

// SBC A, L
// 0x9D:
func opcode0x9D(c *CPU) {
	c.sbc(c.l)
}

// SBC A, (HL)
// 0x9E:
func opcode0x9E(c *CPU) {
	c.sbc(c.bus.Read(c.getHL()))
}

// SBC A, A
// 0x9F:
func opcode0x9F(c *CPU) {
	c.sbc(c.a)
}

// AND B
// 0xA0:
func opcode0xA0(c *CPU) {
	c.and(c.b)
}

// AND C
// 0xA1:
func opcode0xA1(c *CPU) {
	c.and(c.c)
}

// AND D
// 0xA2:
func opcode0xA2(c *CPU) {
	c.and(c.d)
}

// AND E
// 0xA3:
func opcode0xA3(c *CPU) {
	c.and(c.e)
}

// AND H
// 0xA4:
func opcode0xA4(c *CPU) {
	c.and(c.h)
}

// AND L
// 0xA5:
func opcode0xA5(c *CPU) {
	c.and(c.l)
}

// AND (HL)
// 0xA6:
func opcode0xA6(c *CPU) {
	c.and(c.bus.Read(c.getHL()))
}

// AND A
// 0xA7:
func opcode0xA7(c *CPU) {
	c.and(c.a)
}

// XOR B
// 0xA8:
func opcode0xA8(c *CPU) {
	c.xor(c.b)
}

// XOR C
// 0xA9:
func opcode0xA9(c *CPU) {
	c.xor(c.c)
}

// XOR D
// 0xAA:
func opcode0xAA(c *CPU) {
	c.xor(c.d)
}

// XOR E
// 0xAB:
func opcode0xAB(c *CPU) {
	c.xor(c.e)
}

// XOR H
// 0xAC:
func opcode0xAC(c *CPU) {
	c.xor(c.h)
}

// XOR L
// 0xAD:
func opcode0xAD(c *CPU) {
	c.xor(c.l)
}

// XOR (HL)
// 0xAE:
func opcode0xAE(c *CPU) {
	c.xor(c.bus.Read(c.getHL()))
}

// XOR A
// 0xAF:
func opcode0xAF(c *CPU) {
	c.xor(c.a)
}

// OR B
// 0xB0:
func opcode0xB0(c *CPU) {
	c.or(c.b)
}

// OR C
// 0xB1:
func opcode0xB1(c *CPU) {
	c.or(c.c)
}

// OR D
// 0xB2:
func opcode0xB2(c *CPU) {
	c.or(c.d)
}

// OR E
// 0xB3:
func opcode0xB3(c *CPU) {
	c.or(c.e)
}

// OR H
// 0xB4:
func opcode0xB4(c *CPU) {
	c.or(c.h)
}

// OR L
// 0xB5:
func opcode0xB5(c *CPU) {
	c.or(c.l)
}

// OR (HL)
// 0xB6:
func opcode0xB6(c *CPU) {
	c.or(c.bus.Read(c.getHL()))
}

// OR A
// 0xB7:
func opcode0xB7(c *CPU) {
	c.or(c.a)
}

// CP B
// 0xB8:
func opcode0xB8(c *CPU) {
	c.cp(c.b)
}

// CP C
// 0xB9:
func opcode0xB9(c *CPU) {
	c.cp(c.c)
}

// CP D
// 0xBA:
func opcode0xBA(c *CPU) {
	c.cp(c.d)
}

// CP E
// 0xBB:
func opcode0xBB(c *CPU) {
	c.cp(c.e)
}

// CP H
// 0xBC:
func opcode0xBC(c *CPU) {
	c.cp(c.h)
}

// CP L
// 0xBD:
func opcode0xBD(c *CPU) {
	c.cp(c.l)
}

// CP (HL)
// 0xBE:
func opcode0xBE(c *CPU) {
	c.cp(c.bus.Read(c.getHL()))
}

// CP A
// 0xBF:
func opcode0xBF(c *CPU) {
	c.cp(c.a)
}

// RET NZ
// 0xC0:
func opcode0xC0(c *CPU) {
	c.retIf(!c.isSetFlag(ZeroFlag))
}

// POP BC
// 0xC1:
func opcode0xC1(c *CPU) {
	c.setBC(c.popStack())
}

// JP NZ, nn
// 0xC2:
func opcode0xC2(c *CPU) {
	c.jpIf(!c.isSetFlag(ZeroFlag))
}

// JP nn
// 0xC3:
func opcode0xC3(c *CPU) {
	c.jp()
}

// CALL NZ, nn
// 0xC4:
func opcode0xC4(c *CPU) {
	c.callIf(!c.isSetFlag(ZeroFlag))
}

// PUSH BC
// 0xC5:
func opcode0xC5(c *CPU) {
	c.pushStack(c.getBC())
}

// ADD A, n
// 0xC6:
func opcode0xC6(c *CPU) {
	c.addToA(c.readImmediate())
}

// RST 0x00
// 0xC7:
func opcode0xC7(c *CPU) {
	c.rst(0x00)
}

// RET Z
// 0xC8:
func opcode0xC8(c *CPU) {
	c.retIf(c.isSetFlag(ZeroFlag))
}

// RET
// 0xC9:
func opcode0xC9(c *CPU) {
	c.ret()
}

// JP Z, nn
// 0xCA:
func opcode0xCA(c *CPU) {
	c.jpIf(c.isSetFlag(ZeroFlag))
}

// CALL Z, nn
// 0xCC:
func opcode0xCC(c *CPU) {
	c.callIf(c.isSetFlag(ZeroFlag))
}

// CALL nn
// 0xCD:
func opcode0xCD(c *CPU) {
	c.call()
}

// ADC A, n
// 0xCE:
func opcode0xCE(c *CPU) {
	c.adc(c.readImmediate())
}

// RST 0x08
// 0xCF:
func opcode0xCF(c *CPU) {
	c.rst(0x08)
}

// RET NC
// 0xD0:
func opcode0xD0(c *CPU) {
	c.retIf(!c.isSetFlag(CarryFlag))
}

// POP DE
// 0xD1:
func opcode0xD1(c *CPU) {
	c.setDE(c.popStack())
}

// JP NC, nn
// 0xD2:
func opcode0xD2(c *CPU) {
	c.jpIf(!c.isSetFlag(CarryFlag))
}

// CALL NC, nn
// 0xD4:
func opcode0xD4(c *CPU) {
	c.callIf(!c.isSetFlag(CarryFlag))
}

// PUSH DE
// 0xD5:
func opcode0xD5(c *CPU) {
	c.pushStack(c.getDE())
}

// SUB n
// 0xD6:
func opcode0xD6(c *CPU) {
	c.sub(c.readImmediate())
}

// RST 0x10
// 0xD7:
func opcode0xD7(c *CPU) {
	c.rst(0x10)
}

// RET C
// 0xD8:
func opcode0xD8(c *CPU) {
	c.retIf(c.isSetFlag(CarryFlag))
}

// RETI
// 0xD9:
func opcode0xD9(c *CPU) {
	c.reti()
}

// JP C, nn
// 0xDA:
func opcode0xDA(c *CPU) {
	c.jpIf(c.isSetFlag(CarryFlag))
}

// CALL C, nn
// 0xDC:
func opcode0xDC(c *CPU) {
	c.callIf(c.isSetFlag(CarryFlag))
}

// SBC A, n
// 0xDE:
func opcode0xDE(c *CPU) {
	c.sbc(c.readImmediate())
}

// RST 0x18
// 0xDF:
func opcode0xDF(c *CPU) {
	c.rst(0x18)
}

// LDH (n), A
// 0xE0:
func opcode0xE0(c *CPU) {
	c.bus.Write(0xFF00+uint16(c.readImmediate()), c.a)
}

// POP HL
// 0xE1:
func opcode0xE1(c *CPU) {
	c.setHL(c.popStack())
}

// LD (C), A
// 0xE2:
func opcode0xE2(c *CPU) {
	c.bus.Write(0xFF00+uint16(c.c), c.a)
}

// PUSH HL
// 0xE5:
func opcode0xE5(c *CPU) {
	c.pushStack(c.getHL())
}

// AND n
// 0xE6:
func opcode0xE6(c *CPU) {
	c.and(c.readImmediate())
}

// RST 0x20
// 0xE7:
func opcode0xE7(c *CPU) {
	c.rst(0x20)
}

// ADD SP, n
// 0xE8:
func opcode0xE8(c *CPU) {
	c.sp = c.addSPSigned(c.readSignedImmediate())
}

// JP (HL)
// 0xE9:
func opcode0xE9(c *CPU) {
	c.pc = c.getHL()
}

// LD (nn), A
// 0xEA:
func opcode0xEA(c *CPU) {
	c.bus.Write(c.readImmediateWord(), c.a)
}

// XOR n
// 0xEE:
func opcode0xEE(c *CPU) {
	c.xor(c.readImmediate())
}

// RST 0x28
// 0xEF:
func opcode0xEF(c *CPU) {
	c.rst(0x28)
}

// LDH A, (n)
// 0xF0:
func opcode0xF0(c *CPU) {
	c.a = c.bus.Read(0xFF00 + uint16(c.readImmediate()))
}

// POP AF
// 0xF1:
func opcode0xF1(c *CPU) {
	c.setAF(c.popStack())
}

// LD A, (C)
// 0xF2:
func opcode0xF2(c *CPU) {
	c.a = c.bus.Read(0xFF00 + uint16(c.c))
}

// DI
// 0xF3:
func opcode0xF3(c *CPU) {
	c.di()
}

// PUSH AF
// 0xF5:
func opcode0xF5(c *CPU) {
	c.pushStack(c.getAF())
}

// OR n
// 0xF6:
func opcode0xF6(c *CPU) {
	c.or(c.readImmediate())
}

// RST 0x30
// 0xF7:
func opcode0xF7(c *CPU) {
	c.rst(0x30)
}

// LD HL, SP+n
// 0xF8:
func opcode0xF8(c *CPU) {
	c.setHL(c.addSPSigned(c.readSignedImmediate()))
}

// LD SP, HL
// 0xF9:
func opcode0xF9(c *CPU) {
	c.sp = c.getHL()
}

// LD A, (nn)
// 0xFA:
func opcode0xFA(c *CPU) {
	c.a = c.bus.Read(c.readImmediateWord())
}

// EI
// 0xFB:
func opcode0xFB(c *CPU) {
	c.ei()
}

// CP n
// 0xFE:
func opcode0xFE(c *CPU) {
	c.cp(c.readImmediate())
}

// RST 0x38
// 0xFF:
func opcode0xFF(c *CPU) {
	c.rst(0x38)
}
