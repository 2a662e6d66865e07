package bpfisa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario fixtures for the end-to-end assembly scenarios A-F, in
// vm_test.go's style of package-level named source strings rather than
// inline literals scattered through the test body.
var (
	forwardJumpSource  = "mov %r0, 1\nja done\nmov %r0, 2\ndone:\nexit"
	backwardLoopSource = "mov %r0, 10\nloop:\nsub %r0, 1\njne %r0, 0, loop\nexit"
	lddwTrailingLabel  = "lddw %r0, 0x123456789\nja done\nmov %r1, 1\ndone:\nexit"
	localCallSource    = "mov %r1, 5\ncall local double\nexit\ndouble:\nadd %r1, %r1\nmov %r0, %r1\nexit"
	undefinedLabelSrc  = "ja undefined\nexit"
	duplicateLabelSrc  = "foo:\nmov %r0, 1\nfoo:\nexit"
)

func TestAssembleScenarioA_ForwardJump(t *testing.T) {
	out, err := Assemble(forwardJumpSource)
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, uint8(0x05), out[8])
	require.Equal(t, uint16(0x0001), binary.LittleEndian.Uint16(out[10:12]))
}

func TestAssembleScenarioB_BackwardLoop(t *testing.T) {
	out, err := Assemble(backwardLoopSource)
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, uint16(0xFFFE), binary.LittleEndian.Uint16(out[18:20]))
}

func TestAssembleScenarioC_LddwWithTrailingLabel(t *testing.T) {
	out, err := Assemble(lddwTrailingLabel)
	require.NoError(t, err)
	require.Len(t, out, 40)
	require.Equal(t, uint16(0x0001), binary.LittleEndian.Uint16(out[18:20]))
}

func TestAssembleScenarioD_LocalCall(t *testing.T) {
	out, err := Assemble(localCallSource)
	require.NoError(t, err)
	require.Len(t, out, 48)

	callRegs := out[9]
	require.Equal(t, uint8(0x10), callRegs, "high nibble 1 marks a local call")
	require.Equal(t, uint32(3), binary.LittleEndian.Uint32(out[12:16]))
}

func TestAssembleScenarioE_UndefinedLabel(t *testing.T) {
	_, err := Assemble(undefinedLabelSrc)
	require.ErrorIs(t, err, ErrUndefinedLabel)
	require.Contains(t, err.Error(), "Undefined label")
}

func TestAssembleScenarioF_DuplicateLabel(t *testing.T) {
	_, err := Assemble(duplicateLabelSrc)
	require.ErrorIs(t, err, ErrDuplicateLabel)
	require.Contains(t, err.Error(), "Duplicate label")
}

func TestAssembleAlignmentProperty(t *testing.T) {
	for _, src := range []string{forwardJumpSource, backwardLoopSource, lddwTrailingLabel, localCallSource} {
		out, err := Assemble(src)
		require.NoError(t, err)
		require.Zero(t, len(out)%8)
	}
}
