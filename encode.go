package bpfisa

import "encoding/binary"

// instructionSize is the width in bytes of a single encoded slot.
const instructionSize = 8

// pack assembles the four fields of one 8-byte slot into little-endian
// bytes, masking each field to its declared width exactly as
// original_source/ubpf/assembler.py's pack() does: callers are
// responsible for range checks upstream.
func pack(opcode uint8, dst, src uint8, offset int16, imm int32) []byte {
	buf := make([]byte, instructionSize)
	buf[0] = opcode
	buf[1] = (dst & 0x0f) | ((src & 0x0f) << 4)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(offset))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(imm))
	return buf
}

// Encode packs one resolved logical instruction into bytes: 8 bytes for
// every mnemonic except lddw, which emits 16 as two adjacent slots (low
// 32 bits of the immediate in the first, high 32 bits in the second,
// all other fields of the second slot zero).
//
// Grounded directly on original_source/ubpf/assembler.py's
// assemble_one/assemble_binop field layout.
func Encode(ins Instruction) ([]byte, error) {
	switch {
	case ins.Mnemonic == "lddw":
		dst := ins.Operands[0].Reg
		imm := ins.Operands[1].Imm
		lo := pack(0x18, dst, 0, 0, int32(uint32(imm)))
		hi := pack(0x00, 0, 0, 0, int32(uint32(imm>>32)))
		return append(lo, hi...), nil

	case isMemLoadMnemonic(ins.Mnemonic):
		opcode := memOpcodeFor(ins.Mnemonic)
		dst := ins.Operands[0].Reg
		mem := ins.Operands[1]
		return pack(opcode, dst, mem.MemBase, mem.MemOff, 0), nil

	case isMemStoreImmMnemonic(ins.Mnemonic):
		opcode := memStoreImmOps[ins.Mnemonic]
		mem := ins.Operands[0]
		imm := ins.Operands[1].Imm
		return pack(opcode, mem.MemBase, 0, mem.MemOff, int32(imm)), nil

	case isMemStoreRegMnemonic(ins.Mnemonic):
		opcode := memStoreRegOps[ins.Mnemonic]
		mem := ins.Operands[0]
		src := ins.Operands[1].Reg
		return pack(opcode, mem.MemBase, src, mem.MemOff, 0), nil

	case isUnaryALUMnemonic(ins.Mnemonic):
		op := unaryALUOps[ins.Mnemonic]
		opcode := classBase(op.classAlu) | (op.sub << subOpShift)
		dst := ins.Operands[0].Reg
		return pack(opcode, dst, 0, 0, 0), nil

	case isEndianMnemonic(ins.Mnemonic):
		e := endianOps[ins.Mnemonic]
		dst := ins.Operands[0].Reg
		return pack(e.opcode, dst, 0, 0, int32(e.width)), nil

	case isBinaryALUMnemonic(ins.Mnemonic):
		return encodeBinaryALU(ins)

	case isJmpCmpMnemonic(ins.Mnemonic):
		sub, is32, _ := jmpCmpLookup(ins.Mnemonic)
		class := uint8(classJMP)
		if is32 {
			class = classJMP32
		}
		opcode := class | (sub << subOpShift)
		dst := ins.Operands[0].Reg
		src := ins.Operands[1]
		offset := int16(ins.Operands[2].Imm)
		if src.Kind == KindImmediate {
			return pack(opcode, dst, 0, offset, int32(src.Imm)), nil
		}
		return pack(opcode|srcBitReg, dst, src.Reg, offset, 0), nil

	case ins.Mnemonic == "ja":
		opcode := classJMP | (jmpMiscOps["ja"] << subOpShift)
		offset := int16(ins.Operands[0].Imm)
		return pack(opcode, 0, 0, offset, 0), nil

	case ins.Mnemonic == "call":
		opcode := classJMP | (jmpMiscOps["call"] << subOpShift)
		imm := ins.Operands[0].Imm
		if ins.CallLocal {
			return pack(opcode, 0, 1, 0, int32(imm)), nil
		}
		return pack(opcode, 0, 0, 0, int32(imm)), nil

	case ins.Mnemonic == "exit":
		opcode := classJMP | (jmpMiscOps["exit"] << subOpShift)
		return pack(opcode, 0, 0, 0, 0), nil

	default:
		return nil, unknownMnemonicError(ins.Mnemonic, ins.Line)
	}
}

// classBase returns the opcode's low-3-bit class constant unshifted;
// kept as a tiny helper so call sites above read uniformly as
// "class | sub<<4".
func classBase(class uint8) uint8 { return class }

func memOpcodeFor(mnemonic string) uint8 {
	if opcode, ok := memLoadOps[mnemonic]; ok {
		return opcode
	}
	return memLoadSXOps[mnemonic]
}

// encodeBinaryALU handles the four binary-ALU tables (64/32-bit,
// signed/unsigned) which all share assemble_binop's shape: class base
// 0x07 or 0x04, source bit set for a register second operand, offset=1
// for the signed variants.
func encodeBinaryALU(ins Instruction) ([]byte, error) {
	var classAlu uint8
	var sub uint8
	var offset int16

	switch {
	case lookupAluOp(binaryALUOps, ins.Mnemonic, &sub):
		classAlu = classALU64
	case lookupAluOp(binaryALU32Ops, ins.Mnemonic, &sub):
		classAlu = classALU32
	case lookupAluOp(signedBinaryALUOps, ins.Mnemonic, &sub):
		classAlu = classALU64
		offset = 1
	case lookupAluOp(signedBinaryALU32Ops, ins.Mnemonic, &sub):
		classAlu = classALU32
		offset = 1
	default:
		return nil, unknownMnemonicError(ins.Mnemonic, ins.Line)
	}

	opcode := classAlu | (sub << subOpShift)
	dst := ins.Operands[0].Reg
	src := ins.Operands[1]
	if src.Kind == KindImmediate {
		return pack(opcode, dst, 0, offset, int32(src.Imm)), nil
	}
	return pack(opcode|srcBitReg, dst, src.Reg, offset, 0), nil
}

func lookupAluOp(table map[string]aluBinaryOp, mnemonic string, sub *uint8) bool {
	op, ok := table[mnemonic]
	if !ok {
		return false
	}
	*sub = op.sub
	return true
}
