// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_IN                = Op(0)  // IN
	OP_OUT               = Op(1)  // OUT
	OP_PRINT             = Op(2)  // PRINT
	OP_LINE              = Op(3)  // LINE
	OP_LOAD              = Op(4)  // LOAD
	OP_LOAD_DIRECT       = Op(5)  // LOAD#
	OP_LOAD_INDIRECT     = Op(6)  // LOAD@
	OP_STORE             = Op(7)  // STORE
	OP_ADD               = Op(8)  // ADD
	OP_ADD_DIRECT        = Op(9)  // ADD#
	OP_ADD_INDIRECT      = Op(10) // ADD@
	OP_SUBTRACT          = Op(11) // SUBTRACT
	OP_SUBTRACT_DIRECT   = Op(12) // SUBTRACT#
	OP_SUBTRACT_INDIRECT = Op(13) // SUBTRACT@
	OP_MULTIPLY          = Op(14) // MULTIPLY
	OP_MULTIPLY_DIRECT   = Op(15) // MULTIPLY#
	OP_MULTIPLY_INDIRECT = Op(16) // MULTIPLY@
	OP_DIVIDE            = Op(17) // DIVIDE
	OP_DIVIDE_DIRECT     = Op(18) // DIVIDE#
	OP_DIVIDE_INDIRECT   = Op(19) // DIVIDE@
	OP_JUMP              = Op(20) // JUMP
	OP_JINEG             = Op(21) // JINEG
	OP_JIZERO            = Op(22) // JIZERO
	OP_HALT              = Op(23) // HALT
)

// OperandKind is the shape of an instruction's operand.
type OperandKind int

const (
	OPERAND_NONE    = OperandKind(0) // No operand.
	OPERAND_TEXT    = OperandKind(1) // Index into the literal text pool.
	OPERAND_LITERAL = OperandKind(2) // Direct signed integer.
	OPERAND_STORAGE = OperandKind(3) // Named storage slot index.
	OPERAND_LABEL   = OperandKind(4) // Resolved instruction index.
	OPERAND_ADDRESS = OperandKind(5) // Mnemonic only: LITERAL or STORAGE, chosen by the assembler.
)

// mnemonicMap maps source mnemonics to operations.
var mnemonicMap = map[string]Op{
	"IN":       OP_IN,
	"OUT":      OP_OUT,
	"PRINT":    OP_PRINT,
	"LINE":     OP_LINE,
	"LOAD":     OP_LOAD,
	"STORE":    OP_STORE,
	"ADD":      OP_ADD,
	"SUBTRACT": OP_SUBTRACT,
	"MULTIPLY": OP_MULTIPLY,
	"DIVIDE":   OP_DIVIDE,
	"JUMP":     OP_JUMP,
	"JINEG":    OP_JINEG,
	"JIZERO":   OP_JIZERO,
	"HALT":     OP_HALT,
}

// addressMap maps an arithmetic mnemonic to its direct and indirect forms.
var addressMap = map[Op][2]Op{
	OP_LOAD:     {OP_LOAD_DIRECT, OP_LOAD_INDIRECT},
	OP_ADD:      {OP_ADD_DIRECT, OP_ADD_INDIRECT},
	OP_SUBTRACT: {OP_SUBTRACT_DIRECT, OP_SUBTRACT_INDIRECT},
	OP_MULTIPLY: {OP_MULTIPLY_DIRECT, OP_MULTIPLY_INDIRECT},
	OP_DIVIDE:   {OP_DIVIDE_DIRECT, OP_DIVIDE_INDIRECT},
}

// LookupOp returns the operation for a source mnemonic.
func LookupOp(mnemonic string) (op Op, ok bool) {
	op, ok = mnemonicMap[mnemonic]
	return
}

// Operand returns the kind of operand carried by the operation.
func (op Op) Operand() OperandKind {
	switch op {
	case OP_PRINT:
		return OPERAND_TEXT
	case OP_LOAD, OP_ADD, OP_SUBTRACT, OP_MULTIPLY, OP_DIVIDE:
		return OPERAND_ADDRESS
	case OP_LOAD_DIRECT, OP_ADD_DIRECT, OP_SUBTRACT_DIRECT, OP_MULTIPLY_DIRECT, OP_DIVIDE_DIRECT:
		return OPERAND_LITERAL
	case OP_LOAD_INDIRECT, OP_ADD_INDIRECT, OP_SUBTRACT_INDIRECT, OP_MULTIPLY_INDIRECT, OP_DIVIDE_INDIRECT, OP_STORE:
		return OPERAND_STORAGE
	case OP_JUMP, OP_JINEG, OP_JIZERO:
		return OPERAND_LABEL
	}

	return OPERAND_NONE
}

// Mnemonic returns the source mnemonic of the operation.
func (op Op) Mnemonic() string {
	for mnemonic, base := range mnemonicMap {
		if base == op {
			return mnemonic
		}
		forms, ok := addressMap[base]
		if ok && (forms[0] == op || forms[1] == op) {
			return mnemonic
		}
	}

	return op.String()
}

// Instruction is a single assembled instruction.
type Instruction struct {
	LineNo  int    // Source line number.
	Op      Op     // Operation.
	Operand int32  // Operand, interpreted by Op.Operand().
	Label   string // Jump target label, for OPERAND_LABEL instructions.
}

// String renders the instruction with its operand as indexes.
func (inst Instruction) String() string {
	switch inst.Op.Operand() {
	case OPERAND_NONE:
		return inst.Op.String()
	case OPERAND_LABEL:
		return fmt.Sprintf("%v %v (%d)", inst.Op, inst.Label, inst.Operand)
	}

	return fmt.Sprintf("%v %d", inst.Op, inst.Operand)
}
