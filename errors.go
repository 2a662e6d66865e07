package bpfisa

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors, compared via errors.Is. Concrete errors returned by
// this package wrap one of these with github.com/pkg/errors so the
// original cause survives while the message carries positional detail:
// a fixed "what went wrong" sentinel plus a caller-facing formatted
// message.
var (
	ErrDuplicateLabel  = errors.New("duplicate label")
	ErrUndefinedLabel  = errors.New("undefined label")
	ErrUnknownMnemonic = errors.New("unexpected instruction")
	ErrMalformedLine   = errors.New("malformed instruction line")
	ErrOperandRange    = errors.New("operand out of range")
	ErrMalformedCorpus = errors.New("malformed corpus file")
)

// duplicateLabelError reports a label defined more than once.
func duplicateLabelError(name string, line int) error {
	return errors.Wrapf(ErrDuplicateLabel, "Duplicate label: %s (line %d)", name, line)
}

// undefinedLabelError reports a label referenced but never defined.
func undefinedLabelError(name string) error {
	return errors.Wrapf(ErrUndefinedLabel, "Undefined label: %s", name)
}

// unknownMnemonicError reports a token that doesn't match any opcode
// table entry.
func unknownMnemonicError(mnemonic string, line int) error {
	return errors.Wrapf(ErrUnknownMnemonic, "unexpected instruction '%s' (line %d)", mnemonic, line)
}

func malformedLineError(line int, reason string) error {
	return errors.Wrapf(ErrMalformedLine, "line %d: %s", line, reason)
}

func operandRangeError(line int, what string, value int64, bits int) error {
	return errors.Wrapf(ErrOperandRange, "line %d: %s value %d does not fit in %d bits", line, what, value, bits)
}

func malformedCorpusError(reason string, args ...interface{}) error {
	return errors.Wrap(ErrMalformedCorpus, fmt.Sprintf(reason, args...))
}
