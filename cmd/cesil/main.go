// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/cesil/emulator"
	"github.com/ezrec/cesil/translate"
)

var f = translate.From

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var list []string
	for name, value := range d {
		list = append(list, name+"="+value)
	}
	return strings.Join(list, ",")
}

func (d defines) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%v: expected NAME=VALUE", text)
	}
	d[name] = value
	return nil
}

func main() {
	var compile string
	var run bool
	var memory bool
	var listing bool
	var input string
	var output string
	var verbose bool
	predefine := defines{}

	flag.StringVar(&compile, "c", "", ".cesil file to assemble")
	flag.BoolVar(&run, "r", false, "Run the assembled file, then exit")
	flag.BoolVar(&memory, "m", false, "Dump storage after running")
	flag.BoolVar(&listing, "l", false, "Print the assembled listing")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(predefine, "D", "Predefine NAME=VALUE for $(...) expressions")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	for name, value := range predefine {
		emu.Assembler.Predefine(name, value)
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		atexit.Register(func() { inf.Close() })
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { ouf.Close() })
		emu.Tape.Output = ouf
	}

	// Interactive mode.
	if len(compile) == 0 {
		shell := NewShell(emu)
		shell.Interact()
		atexit.Exit(0)
	}

	failed, err := emu.Load(compile)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	if listing {
		fmt.Fprint(emu.Tape.Output, emu.Program)
	}

	if failed {
		atexit.Fatalf("%v: %v", compile, emulator.ErrProgramFailed)
	}

	if run {
		err = emu.Run()
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
	}

	if memory {
		emu.Dump(emu.Tape.Output)
	}

	atexit.Exit(0)
}
