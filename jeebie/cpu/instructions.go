package cpu

import "github.com/valerio/jeebie-core/jeebie/bit"

func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

func (c *CPU) inc(r *uint8) {
	*r++
	value := *r

	c.setFlagToCondition(ZeroFlag, value == 0)
	c.setFlagToCondition(HalfCarryFlag, value&0xF == 0)
	c.resetFlag(SubFlag)
}

func (c *CPU) dec(r *uint8) {
	*r--
	value := *r

	c.setFlagToCondition(ZeroFlag, value == 0)
	c.setFlagToCondition(HalfCarryFlag, value&0xF == 0xF)
	c.setFlag(SubFlag)
}

// shiftFlags sets Z from the result and C from the bit shifted out, clearing N and H.
func (c *CPU) shiftFlags(result uint8, carry bool) {
	c.f = 0
	c.setFlagToCondition(ZeroFlag, result == 0)
	c.setFlagToCondition(CarryFlag, carry)
}

func (c *CPU) rlc(r *uint8) {
	value := *r
	*r = value<<1 | value>>7
	c.shiftFlags(*r, value > 0x7F)
}

func (c *CPU) rl(r *uint8) {
	value := *r
	*r = value<<1 | c.flagToBit(CarryFlag)
	c.shiftFlags(*r, value > 0x7F)
}

func (c *CPU) rrc(r *uint8) {
	value := *r
	*r = value>>1 | value<<7
	c.shiftFlags(*r, value&1 == 1)
}

func (c *CPU) rr(r *uint8) {
	value := *r
	*r = value>>1 | c.flagToBit(CarryFlag)<<7
	c.shiftFlags(*r, value&1 == 1)
}

func (c *CPU) sla(r *uint8) {
	value := *r
	*r = value << 1
	c.shiftFlags(*r, value > 0x7F)
}

// sra shifts right, keeping bit 7.
func (c *CPU) sra(r *uint8) {
	value := *r
	*r = value>>1 | value&0x80
	c.shiftFlags(*r, value&1 == 1)
}

func (c *CPU) srl(r *uint8) {
	value := *r
	*r = value >> 1
	c.shiftFlags(*r, value&1 == 1)
}

func (c *CPU) swap(r *uint8) {
	*r = *r<<4 | *r>>4
	c.shiftFlags(*r, false)
}

// addToA sets the result of adding value to A, while setting all relevant flags.
func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value

	c.setFlagToCondition(ZeroFlag, result == 0)
	c.resetFlag(SubFlag)
	c.setFlagToCondition(CarryFlag, uint16(a)+uint16(value) > 0xFF)
	c.setFlagToCondition(HalfCarryFlag, a&0xF+value&0xF > 0xF)

	c.a = result
}

func (c *CPU) adc(value uint8) {
	a := c.a
	carry := c.flagToBit(CarryFlag)
	result := a + value + carry

	c.setFlagToCondition(ZeroFlag, result == 0)
	c.resetFlag(SubFlag)
	c.setFlagToCondition(CarryFlag, uint16(a)+uint16(value)+uint16(carry) > 0xFF)
	c.setFlagToCondition(HalfCarryFlag, a&0xF+value&0xF+carry > 0xF)

	c.a = result
}

// addToHL sets the result of adding a 16 bit value to HL. Z is not affected.
func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	result := hl + value

	c.resetFlag(SubFlag)
	c.setFlagToCondition(CarryFlag, uint32(hl)+uint32(value) > 0xFFFF)
	c.setFlagToCondition(HalfCarryFlag, hl&0xFFF+value&0xFFF > 0xFFF)

	c.setHL(result)
}

// addSPSigned returns SP + n. Flags come from the unsigned low byte addition and
// Z and N are always cleared.
func (c *CPU) addSPSigned(n int8) uint16 {
	sp := c.sp
	result := sp + uint16(n)
	carries := sp ^ uint16(n) ^ result

	c.f = 0
	c.setFlagToCondition(HalfCarryFlag, carries&0x10 != 0)
	c.setFlagToCondition(CarryFlag, carries&0x100 != 0)

	return result
}

// sub will subtract the value from register A and set all relevant flags.
func (c *CPU) sub(value uint8) {
	c.a = c.subtract(value, 0)
}

func (c *CPU) sbc(value uint8) {
	c.a = c.subtract(value, c.flagToBit(CarryFlag))
}

func (c *CPU) cp(value uint8) {
	c.subtract(value, 0)
}

func (c *CPU) subtract(value, carry uint8) uint8 {
	a := c.a
	result := a - value - carry

	c.setFlagToCondition(ZeroFlag, result == 0)
	c.setFlag(SubFlag)
	c.setFlagToCondition(CarryFlag, uint16(a) < uint16(value)+uint16(carry))
	c.setFlagToCondition(HalfCarryFlag, a&0xF < value&0xF+carry)

	return result
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.f = uint8(HalfCarryFlag)
	c.setFlagToCondition(ZeroFlag, c.a == 0)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.f = 0
	c.setFlagToCondition(ZeroFlag, c.a == 0)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.f = 0
	c.setFlagToCondition(ZeroFlag, c.a == 0)
}

// daa adjusts A to a valid BCD value after an addition or subtraction.
func (c *CPU) daa() {
	a := c.a
	var correction uint8
	carry := c.isSetFlag(CarryFlag)

	if c.isSetFlag(HalfCarryFlag) || (!c.isSetFlag(SubFlag) && a&0xF > 9) {
		correction |= 0x06
	}
	if carry || (!c.isSetFlag(SubFlag) && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if c.isSetFlag(SubFlag) {
		a -= correction
	} else {
		a += correction
	}

	c.a = a
	c.setFlagToCondition(ZeroFlag, a == 0)
	c.resetFlag(HalfCarryFlag)
	c.setFlagToCondition(CarryFlag, carry)
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(SubFlag)
	c.setFlag(HalfCarryFlag)
}

func (c *CPU) scf() {
	c.resetFlag(SubFlag)
	c.resetFlag(HalfCarryFlag)
	c.setFlag(CarryFlag)
}

func (c *CPU) ccf() {
	c.resetFlag(SubFlag)
	c.resetFlag(HalfCarryFlag)
	c.setFlagToCondition(CarryFlag, !c.isSetFlag(CarryFlag))
}

// bit tests bit idx of value: Z is set if the bit is 0. C is not affected.
func (c *CPU) bit(idx, value uint8) {
	c.setFlagToCondition(ZeroFlag, !bit.IsSet(idx, value))
	c.resetFlag(SubFlag)
	c.setFlag(HalfCarryFlag)
}

func (c *CPU) set(idx uint8, r *uint8) {
	*r = bit.Set(idx, *r)
}

func (c *CPU) res(idx uint8, r *uint8) {
	*r = bit.Reset(idx, *r)
}

// jr performs a relative jump using the signed immediate byte.
func (c *CPU) jr() {
	n := c.readSignedImmediate()
	c.pc += uint16(n)
}

// jrIf consumes the offset and jumps only when condition holds.
func (c *CPU) jrIf(condition bool) {
	if !condition {
		c.pc++
		return
	}
	c.jr()
	c.branched = true
}

func (c *CPU) jp() {
	c.pc = c.readImmediateWord()
}

func (c *CPU) jpIf(condition bool) {
	if !condition {
		c.pc += 2
		return
	}
	c.jp()
	c.branched = true
}

func (c *CPU) call() {
	target := c.readImmediateWord()
	c.pushStack(c.pc)
	c.pc = target
}

func (c *CPU) callIf(condition bool) {
	if !condition {
		c.pc += 2
		return
	}
	c.call()
	c.branched = true
}

func (c *CPU) ret() {
	c.pc = c.popStack()
}

func (c *CPU) retIf(condition bool) {
	if !condition {
		return
	}
	c.ret()
	c.branched = true
}

func (c *CPU) rst(vector uint16) {
	c.pushStack(c.pc)
	c.pc = vector
}

// halt stops the CPU until an interrupt is pending. With IME off and an interrupt
// already pending the CPU does not halt; if the HALT bug is emulated the next
// opcode byte is then fetched twice.
func (c *CPU) halt() {
	if !c.interrupts.IME() && c.interrupts.Pending() {
		c.haltBug = c.haltBugEnabled
		return
	}
	c.halted = true
}

// stop consumes its padding byte and resets DIV. The CPU then sleeps until an
// interrupt is pending.
func (c *CPU) stop() {
	c.pc++
	c.bus.ResetDivider()
	c.stopped = true
}

func (c *CPU) ei() {
	if !c.interrupts.IME() && c.eiDelay == 0 {
		c.eiDelay = 2
	}
}

func (c *CPU) di() {
	c.interrupts.SetIME(false)
	c.eiDelay = 0
}

func (c *CPU) reti() {
	c.ret()
	c.interrupts.SetIME(true)
	c.eiDelay = 0
}
