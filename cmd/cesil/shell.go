package main

import (
	"fmt"
	stdio "io"
	"os"
	"strings"

	"github.com/lmorg/readline"

	"github.com/ezrec/cesil/emulator"
)

// Command is a shell command.
type Command int

const (
	CMD_BLANK   = Command(0)
	CMD_LOAD    = Command(1)
	CMD_RUN     = Command(2)
	CMD_MEMORY  = Command(3)
	CMD_QUIT    = Command(4)
	CMD_UNKNOWN = Command(5)
)

var commandMap = map[string]Command{
	"load":   CMD_LOAD,
	"run":    CMD_RUN,
	"memory": CMD_MEMORY,
	"quit":   CMD_QUIT,
}

// LineReader reads a command line.
type LineReader interface {
	Readline() (string, error)
}

// Shell is the interactive load/run/memory/quit loop.
type Shell struct {
	Emulator *emulator.Emulator
	Input    LineReader
	Output   stdio.Writer

	failed bool // Set if the last load failed.
}

// NewShell creates a shell reading commands with readline from a terminal,
// or from the emulator's tape otherwise. Reading from the tape keeps command
// lines and IN data in a single stream.
func NewShell(emu *emulator.Emulator) (sh *Shell) {
	sh = &Shell{
		Emulator: emu,
		Input:    &emu.Tape,
		Output:   emu.Tape.Output,
	}

	if emu.Tape.Input == os.Stdin && readline.IsTerminal(int(os.Stdin.Fd())) {
		rl := readline.NewInstance()
		rl.SetPrompt("CESIL ")
		sh.Input = rl
	}

	return
}

// parse splits a command line into a command and its argument. A command
// may be abbreviated to any prefix, down to its first letter.
func parse(line string) (cmd Command, arg string) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return CMD_BLANK, ""
	}

	cmd = CMD_UNKNOWN
	for name, command := range commandMap {
		if strings.HasPrefix(name, words[0]) {
			cmd = command
			break
		}
	}

	if len(words) > 1 {
		arg = strings.Join(words[1:], " ")
	}

	return
}

// Banner writes the welcome and usage text.
func (sh *Shell) Banner() {
	fmt.Fprint(sh.Output, f("Welcome to the CESIL run-time environment.\n\n"))
	fmt.Fprint(sh.Output, f("Usage:\n"))
	fmt.Fprint(sh.Output, f("l(oad) <filename> - checks a source file for errors.\n"))
	fmt.Fprint(sh.Output, f("r(un) - executes the code.\n"))
	fmt.Fprint(sh.Output, f("m(emory) - displays named storage.\n"))
	fmt.Fprint(sh.Output, f("q(uit) - quits CESIL.\n\n"))
}

// Do performs a single command line, and returns true when the shell should quit.
func (sh *Shell) Do(line string) (quit bool) {
	emu := sh.Emulator

	cmd, arg := parse(line)
	switch cmd {
	case CMD_BLANK:
	case CMD_LOAD:
		if len(arg) == 0 {
			fmt.Fprint(sh.Output, f("Missing filename.\n"))
			return
		}
		path, err := emulator.SourcePath(arg)
		if err != nil {
			fmt.Fprint(sh.Output, f("No such file.\n"))
			return
		}
		failed, err := emu.Load(path)
		if err != nil {
			fmt.Fprintf(sh.Output, "%v: %v\n", path, err)
		}
		sh.failed = failed || err != nil
	case CMD_RUN:
		if sh.failed {
			fmt.Fprintf(sh.Output, "%v\n", f("Cannot run program due to syntax errors."))
			return
		}
		err := emu.Run()
		if err != nil {
			fmt.Fprintf(sh.Output, "%v\n", err)
		}
	case CMD_MEMORY:
		emu.Dump(sh.Output)
	case CMD_QUIT:
		quit = true
	default:
		fmt.Fprint(sh.Output, f("I do not understand.\n"))
	}

	return
}

// Interact runs the shell until quit or end of input.
func (sh *Shell) Interact() {
	sh.Banner()

	for {
		line, err := sh.Input.Readline()
		if err != nil {
			break
		}
		if sh.Do(line) {
			break
		}
	}

	fmt.Fprint(sh.Output, f("Bye\n"))
}
