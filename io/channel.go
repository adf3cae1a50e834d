// Package io provides the console channel the CESIL machine uses for
// IN, OUT, PRINT, LINE and HALT.
package io

// Channel defines the interface between the machine and its console.
type Channel interface {
	// Receive reads the next integer from the input.
	Receive() (value int32, err error)
	// Send writes text to the output.
	Send(text string) error
	// Discard drops whatever remains of the current input line.
	Discard()
}
