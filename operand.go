package bpfisa

import "fmt"

// OperandKind discriminates the payload carried by an Operand.
type OperandKind int

const (
	// KindRegister holds a register number 0-10 in Reg.
	KindRegister OperandKind = iota
	// KindImmediate holds a signed 64-bit constant in Imm.
	KindImmediate
	// KindMemory holds a base register plus a signed 16-bit byte offset,
	// written "[%rN+off]" or "[%rN-off]" in assembly source.
	KindMemory
	// KindLabelRef holds the name of a label used as a jump/call target.
	KindLabelRef
)

// Operand is a tagged union over the four operand shapes the parser can
// produce: a register, an immediate, a memory reference, or a label
// reference. Only the fields matching Kind are meaningful.
type Operand struct {
	Kind OperandKind
	Reg  uint8
	Imm  int64

	MemBase uint8
	MemOff  int16

	Label string
}

// Register builds a register operand.
func Register(n uint8) Operand { return Operand{Kind: KindRegister, Reg: n} }

// Immediate builds an immediate operand.
func Immediate(v int64) Operand { return Operand{Kind: KindImmediate, Imm: v} }

// Memory builds a base+offset memory reference operand.
func Memory(base uint8, off int16) Operand {
	return Operand{Kind: KindMemory, MemBase: base, MemOff: off}
}

// LabelRef builds a label-reference operand.
func LabelRef(name string) Operand { return Operand{Kind: KindLabelRef, Label: name} }

func (o Operand) String() string {
	switch o.Kind {
	case KindRegister:
		return fmt.Sprintf("%%r%d", o.Reg)
	case KindImmediate:
		return fmt.Sprintf("%d", o.Imm)
	case KindMemory:
		return fmt.Sprintf("[%%r%d%s]", o.MemBase, formatSignedOffset(int32(uint16(o.MemOff))))
	case KindLabelRef:
		return o.Label
	default:
		return "<invalid operand>"
	}
}

// Instruction is the logical, not-yet-encoded form of one line of
// assembly: a mnemonic plus its operands, optionally preceded by a
// label definition on the same line. LabelDef is empty when the line
// defines no label.
type Instruction struct {
	LabelDef string
	Mnemonic string
	Operands []Operand

	// CallLocal marks a "call local <target>" instruction: the "local"
	// token is a grammar marker, not an operand, so it is carried as a
	// flag rather than as an element of Operands.
	CallLocal bool

	// Line is the 1-based source line number, carried through for error
	// messages.
	Line int
}

// IsLabelOnly reports whether this item carries no instruction at all —
// a bare "name:" line with nothing else on it.
func (ins Instruction) IsLabelOnly() bool {
	return ins.Mnemonic == "" && ins.LabelDef != ""
}

// slotCount reports how many 8-byte instruction slots this instruction
// occupies once encoded: 2 for lddw, 1 for everything else.
func (ins Instruction) slotCount() int {
	if ins.Mnemonic == "lddw" {
		return 2
	}
	return 1
}
