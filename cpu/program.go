package cpu

import (
	"fmt"
	"strings"
)

// Program is an assembled CESIL program.
type Program struct {
	Instructions []Instruction // Instruction list, executed from index 0.
	Storage      Storage       // Named storage bank.
	Labels       Labels        // Jump labels.
	Texts        []string      // Literal texts for PRINT.
	Failed       bool          // Set if assembly reported any error.
}

// Empty returns true if the program has no instructions.
func (prog *Program) Empty() bool {
	return prog == nil || len(prog.Instructions) == 0
}

// Operand renders the operand of an instruction using the program's symbols.
func (prog *Program) Operand(inst Instruction) string {
	switch inst.Op.Operand() {
	case OPERAND_TEXT:
		if int(inst.Operand) < len(prog.Texts) {
			return fmt.Sprintf("%q", prog.Texts[inst.Operand])
		}
	case OPERAND_STORAGE:
		if int(inst.Operand) < len(prog.Storage.Stores) {
			return prog.Storage.Stores[inst.Operand].Name
		}
	case OPERAND_LITERAL:
		return fmt.Sprintf("%d", inst.Operand)
	case OPERAND_LABEL:
		return inst.Label
	case OPERAND_NONE:
		return ""
	}

	return fmt.Sprintf("?%d", inst.Operand)
}

// String returns a listing of the program.
func (prog *Program) String() string {
	var text strings.Builder

	for index, inst := range prog.Instructions {
		line := fmt.Sprintf("%4d %4d  %-9s%v", index, inst.LineNo, inst.Op.Mnemonic(), prog.Operand(inst))
		text.WriteString(strings.TrimRight(line, " "))
		text.WriteByte('\n')
	}

	return text.String()
}
