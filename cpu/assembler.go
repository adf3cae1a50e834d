// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"math"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cesil/internal"
)

// Predefined system equates, visible to $(...) expressions.
var sysEquate = map[string]string{
	"LINENO":    "0",
	"INT32_MAX": fmt.Sprintf("%d", math.MaxInt32),
	"INT32_MIN": fmt.Sprintf("%d", math.MinInt32),
}

// Assembler is a two pass assembler for CESIL.
//
// Every defect found is written to Output as soon as it is found, and
// collected in Errors. Assembly always runs to the end of the source so that
// all defects are reported at once; Program.Failed is set if there were any.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Output  io.Writer // Destination of diagnostics, if not nil.
	Errors  []error   // Diagnostics from the last Parse.

	predefine map[string]string // Predefines
	program   *Program          // Program being assembled.
	reserved  int               // Instruction indexes reserved so far.
	lineno    int               // Current line number.
}

// Predefine defines a new equate or redefines an existing equate for
// use in $(...) expressions.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// report records a diagnostic and fails the program.
func (asm *Assembler) report(err error) {
	asm.program.Failed = true
	asm.Errors = append(asm.Errors, err)
	if asm.Output != nil {
		fmt.Fprintln(asm.Output, err)
	}
}

// syntaxError reports a diagnostic at the current line.
func (asm *Assembler) syntaxError(word string, err error) {
	asm.report(ErrSyntax{LineNo: asm.lineno, Word: word, Err: err})
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{Name: "cesil"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}

	equates := internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine))
	for key, str := range equates {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer predefines.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	pred["LINENO"] = starlark.MakeInt(asm.lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > math.MaxInt32 || st_int64 < math.MinInt32 {
		err = ErrExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

// emit appends an instruction to the program, returning its position.
func (asm *Assembler) emit(op Op, operand int32) int {
	prog := asm.program
	prog.Instructions = append(prog.Instructions, Instruction{LineNo: asm.lineno, Op: op, Operand: operand})
	return len(prog.Instructions) - 1
}

// address assembles a LOAD or arithmetic instruction, choosing the
// indirect form for a store name and the direct form for an integer.
func (asm *Assembler) address(op Op, word string) (err error) {
	forms := addressMap[op]

	if IsIdentifier(word) {
		slot := asm.program.Storage.Resolve(word)
		asm.emit(forms[1], int32(slot))
		return
	}

	if expr, ok := isExpression(word); ok {
		var value int32
		value, err = asm.parenEval(expr)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOperandMalformed, err)
			return
		}
		asm.emit(forms[0], value)
		return
	}

	if !IsInteger(word) {
		err = ErrOperandMalformed
		return
	}

	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		err = ErrOperandMalformed
		return
	}

	asm.emit(forms[0], int32(v64))
	return
}

// parseLine assembles a single source line.
func (asm *Assembler) parseLine(line string) {
	prog := asm.program

	if len(line) == 0 || line[0] == '*' {
		return
	}

	label, mnemonic, operand := splitLine(line)
	if len(mnemonic) == 0 {
		return
	}

	// The index is reserved before the line is validated, so a bad line
	// still occupies an instruction index for the labels that follow it.
	index := asm.reserved
	asm.reserved++

	if len(label) != 0 {
		if !IsIdentifier(label) {
			asm.syntaxError(label, ErrLabelMalformed)
			return
		}
		err := prog.Labels.Define(label, index, asm.lineno)
		if err != nil {
			asm.syntaxError(label, err)
		}
	}

	op, ok := LookupOp(mnemonic)
	if !ok {
		asm.syntaxError(mnemonic, ErrInstructionInvalid)
		return
	}

	switch op.Operand() {
	case OPERAND_NONE:
		asm.emit(op, 0)
	case OPERAND_TEXT:
		prog.Texts = append(prog.Texts, operand)
		asm.emit(op, int32(len(prog.Texts)-1))
	case OPERAND_ADDRESS:
		err := asm.address(op, operand)
		if err != nil {
			asm.syntaxError(operand, err)
		}
	case OPERAND_STORAGE:
		if !IsIdentifier(operand) {
			asm.syntaxError(operand, ErrOperandMalformed)
			return
		}
		slot := prog.Storage.Resolve(operand)
		asm.emit(op, int32(slot))
	case OPERAND_LABEL:
		if !IsIdentifier(operand) {
			asm.syntaxError(operand, ErrOperandMalformed)
			return
		}
		site := asm.emit(op, LABEL_UNRESOLVED)
		prog.Instructions[site].Label = operand
		prog.Labels.Reference(operand, site)
	}
}

// validate checks the structure of the whole program.
func (asm *Assembler) validate() {
	code := asm.program.Instructions

	if len(code) == 0 {
		asm.report(ErrProgramEmpty)
	} else {
		last := code[len(code)-1].Op
		if last != OP_JUMP && last != OP_HALT {
			asm.report(ErrProgramEnd)
		}
	}

	halts := false
	for _, inst := range code {
		if inst.Op == OP_HALT {
			halts = true
			break
		}
	}
	if !halts {
		asm.report(ErrProgramNoHalt)
	}
}

// Parse assembles an input stream into a Program.
//
// The returned error is only set for a failure to read the input; source
// defects are reported through Output and Errors, and set Program.Failed.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	prog = &Program{}
	asm.program = prog
	asm.Errors = nil
	asm.reserved = 0
	asm.lineno = 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		asm.lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", asm.lineno, line)
		}

		asm.parseLine(line)
	}

	err = scanner.Err()
	if err != nil {
		prog.Failed = true
		return
	}

	// Final linking of jump labels.
	for _, lerr := range prog.Labels.Link(prog.Instructions) {
		asm.report(lerr)
	}

	asm.validate()

	if asm.Verbose {
		log.Printf("assembled %d instructions, %d stores, %d texts, failed %v",
			len(prog.Instructions), len(prog.Storage.Stores), len(prog.Texts), prog.Failed)
	}

	return
}
