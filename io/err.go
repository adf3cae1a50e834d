package io

import (
	"errors"

	"github.com/ezrec/cesil/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrInputExhausted = errors.New(f("input exhausted"))
	ErrInputInvalid   = errors.New(f("input is not an integer"))
	ErrOutputMissing  = errors.New(f("no output"))
)
