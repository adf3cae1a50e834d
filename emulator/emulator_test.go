package emulator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cesil/cpu"
	"github.com/ezrec/cesil/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.True(emu.Program.Empty())
	assert.False(emu.Failed())
}

func newEmulator(input string) (emu *Emulator, output *bytes.Buffer) {
	emu = NewEmulator()
	output = &bytes.Buffer{}
	emu.Tape.Input = strings.NewReader(input)
	emu.Tape.Output = output
	return
}

func doAssemble(t *testing.T, emu *Emulator, program []string) {
	failed, err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	assert.False(t, failed)
	if failed || err != nil {
		t.Fatal("assembly failed")
	}
}

func TestEmulatorRoundTrip(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD 5",
		"        OUT",
		"        HALT",
	})

	err := emu.Run()
	assert.NoError(err)
	assert.Equal("5Program halted.\n", output.String())

	dump := &bytes.Buffer{}
	assert.NoError(emu.Dump(dump))
	assert.Equal("Accumulator:-\n5\nNamed storage:-\nLiteral texts:-\n", dump.String())
}

func TestEmulatorNothingToRun(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	assert.NoError(emu.Run())
	assert.Equal("Nothing to run.\n", output.String())
}

func TestEmulatorForwardJump(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	doAssemble(t, emu, []string{
		"        JUMP  SKIP",
		"        PRINT \"skipped\"",
		"        HALT",
		"SKIP    PRINT \"landed\"",
		"        HALT",
	})

	assert.Equal(int32(3), emu.Program.Instructions[0].Operand)
	assert.NoError(emu.Run())
	assert.Equal("landedProgram halted.\n", output.String())
}

func TestEmulatorDivideByZero(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD   12",
		"        DIVIDE 0",
		"        ADD    1",
		"        HALT",
	})

	assert.NoError(emu.Run())
	assert.Equal(int32(13), emu.Accumulator)
	assert.Equal("Run-time error - divide by zero\nProgram halted.\n", output.String())
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator("4\n")
	doAssemble(t, emu, []string{
		"        IN",
		"        STORE  n",
		"        MULTIPLY n",
		"        STORE  square",
		"        PRINT  \"Square: \"",
		"        OUT",
		"        PRINT  \"bye\"",
		"        HALT",
	})

	assert.NoError(emu.Run())

	dump := &bytes.Buffer{}
	assert.NoError(emu.Dump(dump))
	assert.Equal(strings.Join([]string{
		"Accumulator:-",
		"16",
		"Named storage:-",
		"n = 4",
		"square = 16",
		"Literal texts:-",
		"Square: ",
		"bye",
		"",
	}, "\n"), dump.String())
}

func TestEmulatorRerun(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD  count",
		"        ADD   1",
		"        STORE count",
		"        OUT",
		"        HALT",
	})

	assert.NoError(emu.Run())
	assert.NoError(emu.Run())

	// The accumulator is reset for each run; named storage is not.
	assert.Equal("1Program halted.\n2Program halted.\n", output.String())
}

func TestEmulatorInputExhausted(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator("7\n")
	doAssemble(t, emu, []string{
		"TOP     IN",
		"        JUMP TOP",
		"        HALT",
	})

	err := emu.Run()
	assert.ErrorIs(err, io.ErrInputExhausted)
	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(0, rt.Index)
	assert.Equal(1, rt.LineNo)
	assert.Equal(int32(7), emu.Accumulator)
}

func TestEmulatorFailedLoad(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD 1",
		"        HALT",
	})

	failed, err := emu.Assemble(strings.NewReader("        STORE 5\n        OUT\n"))
	assert.NoError(err)
	assert.True(failed)
	assert.True(emu.Failed())
	assert.Equal(3, strings.Count(output.String(), "\n"))

	// A later good load clears the failure.
	doAssemble(t, emu, []string{"        HALT"})
	assert.False(emu.Failed())
}

func TestEmulatorLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "square.cesil")
	source := "        LOAD 6\n        MULTIPLY 7\n        OUT\n        HALT\n"
	assert.NoError(os.WriteFile(path, []byte(source), 0o644))

	emu, output := newEmulator("")

	// The extension is optional.
	failed, err := emu.Load(filepath.Join(dir, "square"))
	assert.NoError(err)
	assert.False(failed)
	assert.NoError(emu.Run())
	assert.Equal("42Program halted.\n", output.String())

	_, err = emu.Load(filepath.Join(dir, "missing"))
	assert.Error(err)
	assert.Equal(4, len(emu.Program.Instructions))
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD 1",
		"",
		"        HALT",
	})

	emu.Reset()
	assert.Equal(1, emu.LineNo())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.LineNo())
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrHalted)
}

func TestEmulatorHaltDiscard(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator("5 9\n7\n")
	doAssemble(t, emu, []string{
		"        IN",
		"        OUT",
		"        HALT",
	})

	// HALT drops the rest of the line the first run read from.
	assert.NoError(emu.Run())
	assert.NoError(emu.Run())
	assert.Equal("Please enter an integer 5Program halted.\n"+
		"Please enter an integer 7Program halted.\n", output.String())
	assert.Equal(int32(7), emu.Cpu.Accumulator)
}

func TestEmulatorAssembleReadError(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator("")
	doAssemble(t, emu, []string{
		"        LOAD 5",
		"        STORE x",
		"        HALT",
	})
	assert.NoError(emu.Run())

	// A line longer than the scanner allows cannot be read.
	source := strings.Repeat("*", 128*1024) + "\n        HALT\n"
	failed, err := emu.Assemble(strings.NewReader(source))
	assert.Error(err)
	assert.True(failed)
	assert.True(emu.Failed())
	assert.True(emu.Program.Empty())
	assert.Empty(emu.Program.Storage.Stores)
	assert.Equal(int32(0), emu.Cpu.Accumulator)
}
