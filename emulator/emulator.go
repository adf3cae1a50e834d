// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/cesil/cpu"
	"github.com/ezrec/cesil/io"
)

// SOURCE_EXT is the extension tried for source files named without one.
const SOURCE_EXT = ".cesil"

// Emulator state. One load/run session: CPU + program + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Assembler cpu.Assembler // Assembler used by Load and Assemble.
	Tape      io.Tape       // Console channel.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Tape)

	return
}

// Failed returns true if the last assembly reported errors.
func (emu *Emulator) Failed() bool {
	return emu.Program.Failed
}

// SourcePath returns the file to load for a name, trying SOURCE_EXT when the
// name as given does not exist and has no extension.
func SourcePath(name string) (path string, err error) {
	path = name
	_, err = os.Stat(path)
	if err == nil {
		return
	}

	if filepath.Ext(name) == "" {
		_, xerr := os.Stat(name + SOURCE_EXT)
		if xerr == nil {
			path = name + SOURCE_EXT
			err = nil
		}
	}

	return
}

// Load assembles a source file, replacing the current program.
// The prior program is kept if the file cannot be opened.
func (emu *Emulator) Load(name string) (failed bool, err error) {
	path, err := SourcePath(name)
	if err != nil {
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return emu.Assemble(inf)
}

// Assemble assembles source text, replacing the current program even when
// the source cannot be read. Diagnostics are written to the tape output.
func (emu *Emulator) Assemble(input stdio.Reader) (failed bool, err error) {
	asm := &emu.Assembler
	asm.Verbose = emu.Verbose
	asm.Output = emu.Tape.Output

	prog, err := asm.Parse(input)
	emu.Program = prog
	emu.Cpu.Reset()
	if err != nil {
		return true, err
	}

	if emu.Verbose {
		log.Printf("program:\n%v", prog)
	}

	return prog.Failed, nil
}

// Reset the machine for a new run. Named storage keeps its values.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	if emu.Cpu.Ip >= 0 && emu.Cpu.Ip < len(emu.Program.Instructions) {
		return emu.Program.Instructions[emu.Cpu.Ip].LineNo
	}

	return 0
}

// Tick performs a single instruction of the emulator. A division by zero
// is reported on the tape and execution continues.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	index := emu.Cpu.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Index: index, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick(emu.Program)
	if errors.Is(err, cpu.ErrDivideByZero) {
		err = emu.Tape.Send(f("Run-time error - divide by zero\n"))
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run executes the program from the first instruction until it halts.
// An empty program is not run.
//
// There is no limit on the number of instructions executed.
func (emu *Emulator) Run() (err error) {
	if emu.Program.Empty() {
		err = emu.Tape.Send(f("Nothing to run.\n"))
		return
	}

	emu.Reset()
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("%v", emu.Cpu)
	}

	return
}

// Dump writes the accumulator, every named store and every literal text.
func (emu *Emulator) Dump(w stdio.Writer) (err error) {
	_, err = fmt.Fprintf(w, "%v\n%d\n%v\n", f("Accumulator:-"), emu.Cpu.Accumulator, f("Named storage:-"))
	if err != nil {
		return
	}

	for name, value := range emu.Program.Storage.All() {
		_, err = fmt.Fprintf(w, "%v = %d\n", name, value)
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintf(w, "%v\n", f("Literal texts:-"))
	if err != nil {
		return
	}

	for _, text := range emu.Program.Texts {
		_, err = fmt.Fprintf(w, "%v\n", text)
		if err != nil {
			return
		}
	}

	return
}
