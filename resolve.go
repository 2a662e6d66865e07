package bpfisa

// symbolTable maps a label name to its 0-based slot index, as recorded
// during pass 1. Private to one assembly unit: built and consumed
// entirely within Resolve.
type symbolTable map[string]int

// Resolve runs two-pass label resolution over a parsed item stream:
// pass 1 assigns slot indices and records label definitions (lddw
// consumes two slots); pass 2 rewrites label references into
// PC-relative offsets, or an absolute slot index for "call local". It
// returns the instruction list with all label references replaced by
// numeric operands, ready for encode.go.
//
// Grounded on CompileSourceFromBuffer's label-map-building loop and
// original_source/ubpf/assembler.py's resolve_label_ref /
// resolve_labels_in_inst arithmetic.
func Resolve(items []Instruction) ([]Instruction, error) {
	symbols := make(symbolTable)
	var instructions []Instruction

	slot := 0
	for _, item := range items {
		if item.LabelDef != "" {
			if _, dup := symbols[item.LabelDef]; dup {
				return nil, duplicateLabelError(item.LabelDef, item.Line)
			}
			symbols[item.LabelDef] = slot
		}
		if item.IsLabelOnly() {
			continue
		}
		instructions = append(instructions, item)
		slot += item.slotCount()
	}

	resolved := make([]Instruction, len(instructions))
	slot = 0
	for i, ins := range instructions {
		r, err := resolveOne(ins, slot, symbols)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
		slot += ins.slotCount()
	}
	return resolved, nil
}

// resolveOne rewrites the label references (if any) of a single
// instruction at its recorded slot index.
func resolveOne(ins Instruction, slot int, symbols symbolTable) (Instruction, error) {
	switch {
	case isJmpCmpMnemonic(ins.Mnemonic) && len(ins.Operands) == 3:
		target, err := resolveOperand(ins.Operands[2], slot, symbols, false)
		if err != nil {
			return ins, err
		}
		ins.Operands[2] = target

	case ins.Mnemonic == "ja" && len(ins.Operands) == 1:
		target, err := resolveOperand(ins.Operands[0], slot, symbols, false)
		if err != nil {
			return ins, err
		}
		ins.Operands[0] = target

	case ins.Mnemonic == "call" && ins.CallLocal && len(ins.Operands) == 1:
		target, err := resolveOperand(ins.Operands[0], slot, symbols, true)
		if err != nil {
			return ins, err
		}
		ins.Operands[0] = target
	}
	return ins, nil
}

// resolveOperand resolves a single label-or-numeric operand. absolute
// selects the "call local" resolution rule (target slot index, not
// PC-relative); otherwise the standard branch-offset rule applies.
func resolveOperand(op Operand, slot int, symbols symbolTable, absolute bool) (Operand, error) {
	if op.Kind != KindLabelRef {
		return op, nil
	}
	target, ok := symbols[op.Label]
	if !ok {
		return Operand{}, undefinedLabelError(op.Label)
	}
	if absolute {
		return Immediate(int64(target)), nil
	}
	return Immediate(int64(target - slot - 1)), nil
}
