package bpfisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleRoundTripSubset(t *testing.T) {
	instructions := []Instruction{
		{Mnemonic: "mov", Operands: []Operand{Register(0), Immediate(5)}},
		{Mnemonic: "add", Operands: []Operand{Register(1), Register(2)}},
		{Mnemonic: "exit"},
		{Mnemonic: "le16", Operands: []Operand{Register(3)}},
		{Mnemonic: "bswap32", Operands: []Operand{Register(4)}},
	}
	for _, ins := range instructions {
		encoded, err := Encode(ins)
		require.NoError(t, err)

		text, err := Disassemble(encoded, false)
		require.NoError(t, err)
		require.NotContains(t, text, "Warnings", "round-trip subset must carry no field-usage warning")

		reencoded, err := Assemble(text)
		require.NoError(t, err)
		require.Equal(t, encoded, reencoded)
	}
}

func TestDisassembleLddwAdvancesSixteenBytes(t *testing.T) {
	lddw, err := Encode(Instruction{Mnemonic: "lddw", Operands: []Operand{Register(0), Immediate(0x123456789)}})
	require.NoError(t, err)
	exit, err := Encode(Instruction{Mnemonic: "exit"})
	require.NoError(t, err)

	data := append(lddw, exit...)
	text, err := Disassemble(data, false)
	require.NoError(t, err)
	require.Contains(t, text, "lddw %r0, 0x123456789")
	require.Contains(t, text, "exit")
	require.NotContains(t, text, "unknown/unsupported", "the second lddw slot must not be decoded on its own")
}

func TestDisassembleUnusedOffsetWarns(t *testing.T) {
	// div's opcode never consumes the offset field, so a nonzero offset
	// smuggled in (as sdiv's offset=1 always is) must produce a warning.
	encoded, err := Encode(Instruction{Mnemonic: "sdiv", Operands: []Operand{Register(0), Immediate(2)}})
	require.NoError(t, err)

	text, err := Disassemble(encoded, false)
	require.NoError(t, err)
	require.Contains(t, text, "Warnings: The offset field of the instruction has a value but it is not used by the instruction.")
}

func TestDisassembleCallLocalWarnsOnSourceRegister(t *testing.T) {
	encoded, err := Encode(Instruction{Mnemonic: "call", CallLocal: true, Operands: []Operand{Immediate(3)}})
	require.NoError(t, err)

	text, err := Disassemble(encoded, false)
	require.NoError(t, err)
	require.Contains(t, text, "call local 0x3")
	require.Contains(t, text, "Warnings: The source register field")
}

func TestDisassembleOffsetFormatting(t *testing.T) {
	require.Equal(t, "+1", formatSignedOffset(1))
	require.Equal(t, "+32767", formatSignedOffset(32767))
	require.Equal(t, "-2", formatSignedOffset(65534))
}

func TestDisassembleVerboseAppendsDetails(t *testing.T) {
	encoded, err := Encode(Instruction{Mnemonic: "exit"})
	require.NoError(t, err)

	text, err := Disassemble(encoded, true)
	require.NoError(t, err)
	require.Contains(t, text, "Details:")
	require.Contains(t, text, "Class: 0x5")
}

func TestDisassembleUnsupportedLoadShape(t *testing.T) {
	// LD class (0) with anything other than the lddw shape is unsupported.
	data := []byte{0x20, 0, 0, 0, 0, 0, 0, 0}
	text, err := Disassemble(data, false)
	require.NoError(t, err)
	require.Contains(t, text, "unknown/unsupported special LOAD instruction")
}
