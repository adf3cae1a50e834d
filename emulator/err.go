package emulator

import (
	"errors"

	"github.com/ezrec/cesil/translate"
)

var f = translate.From

var (
	ErrProgramFailed = errors.New(f("cannot run program due to syntax errors"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Index  int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("instruction %d line %d %v", err.Index, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
