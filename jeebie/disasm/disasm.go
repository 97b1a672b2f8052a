package disasm

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/bit"
)

type operand uint8

const (
	operandNone operand = iota
	operandByte
	operandWord
	operandSigned
	operandRelative
)

// Reader is the read side of the memory bus.
type Reader interface {
	Read(address uint16) byte
}

// Line is a single disassembled instruction.
type Line struct {
	Address     uint16
	Instruction string
	Length      int
}

// DisassembleAt decodes the instruction at pc. Operands that would run past
// the end of the address space read as zero.
func DisassembleAt(pc uint16, r Reader) Line {
	opcode := r.Read(pc)

	if opcode == 0xCB {
		if pc == 0xFFFF {
			return Line{Address: pc, Instruction: "CB ??", Length: 2}
		}
		return Line{Address: pc, Instruction: cbInstructionNames[r.Read(pc+1)], Length: 2}
	}

	length := instructionLengths[opcode]
	template := instructionTemplates[opcode]

	var arg string
	switch operandKinds[opcode] {
	case operandNone:
		return Line{Address: pc, Instruction: template, Length: length}
	case operandByte:
		arg = fmt.Sprintf("$%02X", readByte(r, pc, 1))
	case operandWord:
		arg = fmt.Sprintf("$%04X", bit.Combine(readByte(r, pc, 2), readByte(r, pc, 1)))
	case operandSigned:
		arg = fmt.Sprintf("%+d", int8(readByte(r, pc, 1)))
	case operandRelative:
		target := pc + 2 + uint16(int8(readByte(r, pc, 1)))
		arg = fmt.Sprintf("$%04X", target)
	}

	return Line{Address: pc, Instruction: fmt.Sprintf(template, arg), Length: length}
}

func readByte(r Reader, pc uint16, offset uint16) byte {
	if uint32(pc)+uint32(offset) > 0xFFFF {
		return 0
	}
	return r.Read(pc + offset)
}

// OpcodeName returns the mnemonic of the instruction at pc, with operands.
func OpcodeName(r Reader, pc uint16) string {
	return DisassembleAt(pc, r).Instruction
}

// DisassembleRange decodes count consecutive instructions starting at start.
func DisassembleRange(start uint16, count int, r Reader) []Line {
	lines := make([]Line, 0, count)
	pc := uint32(start)
	for i := 0; i < count && pc <= 0xFFFF; i++ {
		line := DisassembleAt(uint16(pc), r)
		lines = append(lines, line)
		pc += uint32(line.Length)
	}
	return lines
}

// DisassembleAround decodes up to before instructions leading to pc, the
// instruction at pc, and after instructions following it.
//
// Instructions have variable length, so walking backwards is a guess: it picks
// the furthest start point whose decoding lands exactly on pc.
func DisassembleAround(pc uint16, before, after int, r Reader) []Line {
	start := pc
	found := 0

	for offset := min(before*3, int(pc)); offset > 0; offset-- {
		candidate := pc - uint16(offset)
		at := uint32(candidate)
		count := 0
		for at < uint32(pc) {
			at += uint32(DisassembleAt(uint16(at), r).Length)
			count++
		}
		if at == uint32(pc) && count <= before {
			start = candidate
			found = count
			break
		}
	}

	return DisassembleRange(start, found+1+after, r)
}

// Format renders a line for display, marking the current instruction.
func Format(line Line, current bool) string {
	prefix := " "
	if current {
		prefix = ">"
	}
	return fmt.Sprintf("%s0x%04X: %s", prefix, line.Address, line.Instruction)
}
