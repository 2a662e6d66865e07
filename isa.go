// Package bpfisa implements an assembler and disassembler for the
// extended Berkeley Packet Filter (eBPF) 64-bit instruction set: a
// two-pass assembler with label resolution, and the single-pass
// disassembler that is its dual, sharing one opcode table.
package bpfisa

import "strings"

// Instruction classes, the low 3 bits of every opcode byte.
const (
	classLD     = 0
	classLDX    = 1
	classST     = 2
	classSTX    = 3
	classALU32  = 4
	classJMP    = 5
	classJMP32  = 6
	classALU64  = 7
)

// Memory access sizes, encoded in bits 3-4 of LD/LDX/ST/STX opcodes.
const (
	sizeW  = 0 // word, 32 bits
	sizeH  = 1 // half-word, 16 bits
	sizeB  = 2 // byte, 8 bits
	sizeDW = 3 // double word, 64 bits
)

// Source-operand bit for ALU/JMP classes: bit 3 of the opcode byte.
// Clear means the second operand is an immediate; set means a register.
const srcBitReg = 0x08

// ALU/JMP sub-opcodes occupy the high 4 bits of the opcode byte.
const subOpShift = 4

// aluBinaryOp describes one binary ALU mnemonic: its sub-opcode and
// whether it is a signed-division/modulo variant (which is emitted with
// offset=1 per spec invariant 8).
type aluBinaryOp struct {
	sub    uint8
	signed bool
}

// memSizeOps maps the size suffix of a load/store mnemonic to the size
// field value used across LD/LDX/ST/STX opcodes.
var memSizeOps = map[string]uint8{
	"w":  sizeW,
	"h":  sizeH,
	"b":  sizeB,
	"dw": sizeDW,
}

// memLoadOps: ldx<size> -> base opcode 0x61 | (size<<3), zero-extending.
var memLoadOps = map[string]uint8{}

// memLoadSXOps: ldxs<size> -> base opcode 0x81 | (size<<3), sign-extending.
// dw has no sign-extending form since it's already the full register width.
var memLoadSXOps = map[string]uint8{}

// memStoreImmOps: st<size> -> base opcode 0x62 | (size<<3).
var memStoreImmOps = map[string]uint8{}

// memStoreRegOps: stx<size> -> base opcode 0x63 | (size<<3).
var memStoreRegOps = map[string]uint8{}

func init() {
	for suffix, size := range memSizeOps {
		memLoadOps["ldx"+suffix] = 0x61 | (size << 3)
		memStoreImmOps["st"+suffix] = 0x62 | (size << 3)
		memStoreRegOps["stx"+suffix] = 0x63 | (size << 3)
		if suffix != "dw" {
			memLoadSXOps["ldxs"+suffix] = 0x81 | (size << 3)
		}
	}
}

// unaryALUOps: neg -> sub-opcode 8 (class base 0x07); neg32 -> (class base 0x04).
var unaryALUOps = map[string]struct {
	sub      uint8
	classAlu uint8
}{
	"neg":   {8, classALU64},
	"neg32": {8, classALU32},
}

// binaryALUSubOps maps a bare mnemonic (no class suffix) to its
// sub-opcode, shared between the 64-bit and 32-bit tables below.
var binaryALUSubOps = map[string]uint8{
	"add":  0,
	"sub":  1,
	"mul":  2,
	"div":  3,
	"or":   4,
	"and":  5,
	"lsh":  6,
	"rsh":  7,
	"mod":  9,
	"xor":  10,
	"mov":  11,
	"arsh": 12,
}

// signedBinaryALUSubOps: sdiv/smod reuse div/mod's sub-opcode but are
// emitted with offset=1 (spec invariant 8).
var signedBinaryALUSubOps = map[string]uint8{
	"sdiv": 3,
	"smod": 9,
}

// binaryALUOps and binaryALU32Ops map a full mnemonic (e.g. "add",
// "add32") to its sub-opcode; the class (ALU64 or ALU32) is implied by
// which table the mnemonic is found in.
var binaryALUOps = map[string]aluBinaryOp{}
var binaryALU32Ops = map[string]aluBinaryOp{}
var signedBinaryALUOps = map[string]aluBinaryOp{}
var signedBinaryALU32Ops = map[string]aluBinaryOp{}

func init() {
	for mnemonic, sub := range binaryALUSubOps {
		binaryALUOps[mnemonic] = aluBinaryOp{sub: sub}
		binaryALU32Ops[mnemonic+"32"] = aluBinaryOp{sub: sub}
	}
	for mnemonic, sub := range signedBinaryALUSubOps {
		signedBinaryALUOps[mnemonic] = aluBinaryOp{sub: sub, signed: true}
		signedBinaryALU32Ops[mnemonic+"32"] = aluBinaryOp{sub: sub, signed: true}
	}
}

// endianOp describes one endian/byteswap mnemonic's fixed opcode and
// the width (in bits) carried in the immediate field.
type endianOp struct {
	opcode uint8
	width  uint32
}

// endianOps: le16/32/64 -> 0xd4; be16/32/64 -> 0xdc; bswap16/32/64 -> 0xd7.
// bswap decodes off the literal opcode byte rather than just the source
// bit (see DESIGN.md): the original assembler already treats it as a
// first-class END_OPS entry.
var endianOps = map[string]endianOp{
	"le16":     {0xd4, 16},
	"le32":     {0xd4, 32},
	"le64":     {0xd4, 64},
	"be16":     {0xdc, 16},
	"be32":     {0xdc, 32},
	"be64":     {0xdc, 64},
	"bswap16":  {0xd7, 16},
	"bswap32":  {0xd7, 32},
	"bswap64":  {0xd7, 64},
}

// jmpCmpOps: conditional branch sub-opcodes, JMP class base 0x05.
var jmpCmpOps = map[string]uint8{
	"jeq":  1,
	"jgt":  2,
	"jge":  3,
	"jset": 4,
	"jne":  5,
	"jsgt": 6,
	"jsge": 7,
	"jlt":  10,
	"jle":  11,
	"jslt": 12,
	"jsle": 13,
}

// jmpMiscOps: unconditional/control sub-opcodes, JMP class. Unlike
// conditional branches these have no JMP32 counterpart in the original
// assembler (ja/call/exit are always full-width).
var jmpMiscOps = map[string]uint8{
	"ja":   0,
	"call": 8,
	"exit": 9,
}

// jmpCmpLookup resolves a conditional-branch mnemonic, accepting both
// the JMP-class form ("jeq") and the JMP32-class form ("jeq32") the
// decoder can produce, so assembling a disassembled JMP32 branch
// round-trips.
func jmpCmpLookup(mnemonic string) (sub uint8, is32 bool, ok bool) {
	if sub, ok = jmpCmpOps[mnemonic]; ok {
		return sub, false, true
	}
	if base, found := strings.CutSuffix(mnemonic, "32"); found {
		if sub, ok = jmpCmpOps[base]; ok {
			return sub, true, true
		}
	}
	return 0, false, false
}

// memSizeToSuffix reverses memSizeOps for the decoder: size field value
// -> mnemonic suffix.
var memSizeToSuffix = [4]string{sizeW: "w", sizeH: "h", sizeB: "b", sizeDW: "dw"}

// numGeneralRegisters is the number of addressable eBPF registers (r0-r10).
const numGeneralRegisters = 11
