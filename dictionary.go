package bpfisa

import (
	"fmt"
	"io"
	"strings"
)

// WriteDictionary enumerates every encodable instruction (all mnemonics
// across all register combinations, immediates and offsets held at
// zero) and writes one libFuzzer dictionary line per instruction whose
// disassembly carries no field-usage warning, in the form
// `<mnemonic> ="\xHH\xHH..."`.
//
// Grounded on original_source/ubpf/dictionary_generator.py's nested
// enumeration loops and its "skip on any Warnings" filter, but driven
// off this repository's own Encode/decodeOne instead of re-deriving
// opcode bit patterns — dictionary_generator.py's own opcode math
// (gen_ld_st_opcode/gen_alu_or_jump_opcode) disagrees with the
// class-in-low-3-bits rule the disassembler itself decodes by, so
// reusing isa.go/encode.go keeps the generator and the rest of the
// toolkit from drifting apart.
func WriteDictionary(w io.Writer) error {
	for _, ins := range enumerateEncodableInstructions() {
		bytes, err := Encode(ins)
		if err != nil {
			continue
		}
		line, _ := decodeOne(bytes, 0, false)
		if strings.Contains(line, "Warnings") {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s =%s\n", ins.Mnemonic, hexEscape(bytes)); err != nil {
			return err
		}
	}
	return nil
}

func hexEscape(data []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, b := range data {
		fmt.Fprintf(&sb, "\\x%02x", b)
	}
	sb.WriteByte('"')
	return sb.String()
}

// enumerateEncodableInstructions walks every opcode-table mnemonic
// across register 0-10 combinations, producing the same universe of
// legal instructions dictionary_generator.py enumerates by raw bit
// patterns.
func enumerateEncodableInstructions() []Instruction {
	var items []Instruction

	for suffix := range memSizeOps {
		for dst := uint8(0); dst < numGeneralRegisters; dst++ {
			for src := uint8(0); src < numGeneralRegisters; src++ {
				items = append(items,
					Instruction{Mnemonic: "ldx" + suffix, Operands: []Operand{Register(dst), Memory(src, 0)}},
					Instruction{Mnemonic: "st" + suffix, Operands: []Operand{Memory(dst, 0), Immediate(0)}},
					Instruction{Mnemonic: "stx" + suffix, Operands: []Operand{Memory(dst, 0), Register(src)}},
				)
				if suffix != "dw" {
					items = append(items, Instruction{Mnemonic: "ldxs" + suffix, Operands: []Operand{Register(dst), Memory(src, 0)}})
				}
			}
		}
	}

	for dst := uint8(0); dst < numGeneralRegisters; dst++ {
		items = append(items,
			Instruction{Mnemonic: "neg", Operands: []Operand{Register(dst)}},
			Instruction{Mnemonic: "neg32", Operands: []Operand{Register(dst)}},
		)
		for mnemonic := range endianOps {
			items = append(items, Instruction{Mnemonic: mnemonic, Operands: []Operand{Register(dst)}})
		}
	}

	binaryTables := []map[string]aluBinaryOp{binaryALUOps, binaryALU32Ops, signedBinaryALUOps, signedBinaryALU32Ops}
	for _, table := range binaryTables {
		for mnemonic := range table {
			for dst := uint8(0); dst < numGeneralRegisters; dst++ {
				items = append(items, Instruction{Mnemonic: mnemonic, Operands: []Operand{Register(dst), Immediate(0)}})
				for src := uint8(0); src < numGeneralRegisters; src++ {
					items = append(items, Instruction{Mnemonic: mnemonic, Operands: []Operand{Register(dst), Register(src)}})
				}
			}
		}
	}

	for mnemonic := range jmpCmpOps {
		for _, m := range []string{mnemonic, mnemonic + "32"} {
			for dst := uint8(0); dst < numGeneralRegisters; dst++ {
				items = append(items, Instruction{Mnemonic: m, Operands: []Operand{Register(dst), Immediate(0), Immediate(0)}})
				for src := uint8(0); src < numGeneralRegisters; src++ {
					items = append(items, Instruction{Mnemonic: m, Operands: []Operand{Register(dst), Register(src), Immediate(0)}})
				}
			}
		}
	}

	items = append(items, Instruction{Mnemonic: "exit"})
	items = append(items, Instruction{Mnemonic: "ja", Operands: []Operand{Immediate(0)}})
	items = append(items, Instruction{Mnemonic: "call", Operands: []Operand{Immediate(0)}})
	items = append(items, Instruction{Mnemonic: "call", CallLocal: true, Operands: []Operand{Immediate(0)}})
	for dst := uint8(0); dst < numGeneralRegisters; dst++ {
		items = append(items, Instruction{Mnemonic: "lddw", Operands: []Operand{Register(dst), Immediate(0)}})
	}

	return items
}
