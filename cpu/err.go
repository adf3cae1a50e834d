package cpu

import (
	"errors"

	"github.com/ezrec/cesil/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelMalformed     = errors.New(f("label is not of the correct format"))
	ErrInstructionInvalid = errors.New(f("instruction not recognised"))
	ErrOperandMalformed   = errors.New(f("operand is not of the correct format"))
	ErrProgramEmpty       = errors.New(f("the program contains no instructions"))
	ErrProgramEnd         = errors.New(f("the program must end with a JUMP or a HALT instruction"))
	ErrProgramNoHalt      = errors.New(f("the program must contain at least one HALT instruction"))

	// Cpu errors
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrIpRange       = errors.New(f("instruction pointer out of range"))
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrHalted        = errors.New(f("halted"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("could not resolve label %v", string(el))
}

type ErrLabelDuplicate struct {
	FirstLineNo int
}

func (err ErrLabelDuplicate) Error() string {
	return f("duplicate label, first encountered at line %d", err.FirstLineNo)
}

func (err ErrLabelDuplicate) Is(target error) (ok bool) {
	_, ok = target.(ErrLabelDuplicate)
	return
}

type ErrSyntax struct {
	LineNo int
	Word   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Word, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrExpression is returned for a $(...) operand that does not evaluate to
// a 32-bit integer.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
