package bpfisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMovImmediate(t *testing.T) {
	ins := Instruction{Mnemonic: "mov", Operands: []Operand{Register(0), Immediate(1)}}
	b, err := Encode(ins)
	require.NoError(t, err)
	require.Len(t, b, 8)
	require.Equal(t, uint8(0xb7), b[0]) // class 7 (alu64) | sub 11 << 4
	require.Equal(t, uint8(0x00), b[1]) // dst=0, src=0
	require.Equal(t, []byte{0, 0}, b[2:4])
	require.Equal(t, []byte{1, 0, 0, 0}, b[4:8])
}

func TestEncodeAddRegisterSetsSourceBit(t *testing.T) {
	ins := Instruction{Mnemonic: "add", Operands: []Operand{Register(1), Register(2)}}
	b, err := Encode(ins)
	require.NoError(t, err)
	require.Equal(t, uint8(0x07|0x08), b[0]) // class 7 | sub 0<<4 | source bit
	require.Equal(t, uint8(0x21), b[1])      // dst=1, src=2
}

func TestEncodeSignedDivSetsOffsetOne(t *testing.T) {
	ins := Instruction{Mnemonic: "sdiv", Operands: []Operand{Register(0), Immediate(2)}}
	b, err := Encode(ins)
	require.NoError(t, err)
	require.Equal(t, uint8(0x07|(3<<4)), b[0])
	require.Equal(t, []byte{1, 0}, b[2:4], "sdiv/smod carry offset=1")
}

func TestEncodeLddwEmitsTwoSlots(t *testing.T) {
	ins := Instruction{Mnemonic: "lddw", Operands: []Operand{Register(0), Immediate(0x123456789)}}
	b, err := Encode(ins)
	require.NoError(t, err)
	require.Len(t, b, 16)
	require.Equal(t, uint8(0x18), b[0])
	require.Equal(t, uint8(0x00), b[8])
	require.Equal(t, []byte{0x89, 0x67, 0x45, 0x23}, b[4:8])
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, b[12:16])
}

func TestEncodeCallLocalSetsSourceNibble(t *testing.T) {
	ins := Instruction{Mnemonic: "call", CallLocal: true, Operands: []Operand{Immediate(3)}}
	b, err := Encode(ins)
	require.NoError(t, err)
	require.Equal(t, uint8(0x05|(8<<4)), b[0])
	require.Equal(t, uint8(0x10), b[1], "source nibble = 1 marks a local call")
	require.Equal(t, []byte{3, 0, 0, 0}, b[4:8])
}

func TestEncodeUnknownMnemonic(t *testing.T) {
	_, err := Encode(Instruction{Mnemonic: "bogus", Line: 7})
	require.ErrorIs(t, err, ErrUnknownMnemonic)
	require.Contains(t, err.Error(), "unexpected instruction 'bogus'")
}
