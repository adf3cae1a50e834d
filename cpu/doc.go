// Package cpu implements the assembler and accumulator machine for CESIL,
// the Computer Education in Schools Instruction Language.
//
// The assembler reads line-oriented source of the form
//
//	[LABEL] MNEMONIC [OPERAND]
//
// and produces a Program: an instruction list, a bank of named storage
// locations, a pool of literal texts, and the label table used to link
// forward jumps. A label is present only when the first character of the
// line is not whitespace. Lines starting with '*' are comments.
//
// The machine has a single signed 32-bit accumulator. Execution starts at
// instruction 0, and the instruction pointer is advanced before the fetched
// instruction acts, so jumps simply overwrite it.
package cpu
