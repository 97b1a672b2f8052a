package cpu

// The prefixed table is fully regular: bits 7-6 select the group, bits 5-3
// the shift operation or bit number, bits 2-0 the operand in the order
// B C D E H L (HL) A.
var opcodesCB = buildCBTable()

type shiftOp func(c *CPU, r *uint8)

var cbShifts = [8]shiftOp{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
}

const operandHL = 6

func buildCBTable() [256]Opcode {
	var table [256]Opcode
	for op := range 256 {
		group, y, z := uint8(op>>6), uint8(op>>3)&7, uint8(op)&7
		switch group {
		case 0:
			table[op] = cbModify(z, cbShifts[y])
		case 1:
			table[op] = cbBit(y, z)
		case 2:
			table[op] = cbModify(z, func(c *CPU, r *uint8) { c.res(y, r) })
		case 3:
			table[op] = cbModify(z, func(c *CPU, r *uint8) { c.set(y, r) })
		}
	}
	return table
}

func (c *CPU) cbOperand(z uint8) *uint8 {
	return [8]*uint8{&c.b, &c.c, &c.d, &c.e, &c.h, &c.l, nil, &c.a}[z]
}

// cbModify applies a read-modify-write operation; (HL) goes through the bus.
func cbModify(z uint8, apply shiftOp) Opcode {
	if z == operandHL {
		return func(c *CPU) {
			address := c.getHL()
			value := c.bus.Read(address)
			apply(c, &value)
			c.bus.Write(address, value)
		}
	}
	return func(c *CPU) { apply(c, c.cbOperand(z)) }
}

// BIT only reads its operand, so (HL) is never written back.
func cbBit(n, z uint8) Opcode {
	if z == operandHL {
		return func(c *CPU) { c.bit(n, c.bus.Read(c.getHL())) }
	}
	return func(c *CPU) { c.bit(n, *c.cbOperand(z)) }
}
