package cpu

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/ezrec/cesil/io"
)

// Channel is the console interface.
type Channel io.Channel

// Cpu is the simulation context for the CESIL accumulator machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Accumulator int32 // The accumulator.
	Ip          int   // Index of the next instruction to fetch.
	Halted      bool  // Set once a HALT has executed.
	Ticks       int   // Instructions executed since reset.

	channel Channel // Console.
}

// NewCpu creates a new CPU attached to a console.
func NewCpu(channel Channel) (cpu *Cpu) {
	cpu = &Cpu{
		channel: channel,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("ip: %d acc: %d halted: %v ticks: %d", cpu.Ip, cpu.Accumulator, cpu.Halted, cpu.Ticks)
}

// Reset the CPU state. The accumulator and instruction pointer are zeroed.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Accumulator = 0
	cpu.Ip = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// FetchCode fetches the instruction at the instruction pointer.
func (cpu *Cpu) FetchCode(prog *Program) (inst Instruction, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if prog == nil || cpu.Ip < 0 || cpu.Ip >= len(prog.Instructions) {
		err = ErrIpRange
		return
	}

	inst = prog.Instructions[cpu.Ip]
	return
}

// Tick executes a single instruction cycle: fetch, advance the instruction
// pointer, then execute.
func (cpu *Cpu) Tick(prog *Program) (err error) {
	inst, err := cpu.FetchCode(prog)
	if err != nil {
		return
	}

	cpu.Ip++
	cpu.Ticks++

	err = cpu.Execute(prog, inst)
	return
}

// operand returns the value of a direct or indirect operand.
func (cpu *Cpu) operand(prog *Program, inst Instruction) (value int32, err error) {
	switch inst.Op.Operand() {
	case OPERAND_LITERAL:
		value = inst.Operand
	case OPERAND_STORAGE:
		slot := int(inst.Operand)
		if slot < 0 || slot >= len(prog.Storage.Stores) {
			err = ErrOpcodeInvalid
			return
		}
		value = prog.Storage.Stores[slot].Value
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// Execute executes a single instruction.
//
// ErrDivideByZero is not fatal: the accumulator is left unchanged and
// execution may continue with the next instruction.
func (cpu *Cpu) Execute(prog *Program, inst Instruction) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrDivideByZero) {
			err = fmt.Errorf("%v: %w", inst.Op, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip-1, inst)
	}

	switch inst.Op {
	case OP_IN:
		err = cpu.channel.Send(f("Please enter an integer "))
		if err != nil {
			return
		}
		var value int32
		value, err = cpu.channel.Receive()
		if err != nil {
			return
		}
		cpu.Accumulator = value
	case OP_OUT:
		err = cpu.channel.Send(strconv.FormatInt(int64(cpu.Accumulator), 10))
	case OP_PRINT:
		if int(inst.Operand) >= len(prog.Texts) || inst.Operand < 0 {
			err = ErrOpcodeInvalid
			return
		}
		err = cpu.channel.Send(prog.Texts[inst.Operand])
	case OP_LINE:
		err = cpu.channel.Send("\n")
	case OP_STORE:
		slot := int(inst.Operand)
		if slot < 0 || slot >= len(prog.Storage.Stores) {
			err = ErrOpcodeInvalid
			return
		}
		prog.Storage.Stores[slot].Value = cpu.Accumulator
	case OP_LOAD_DIRECT, OP_LOAD_INDIRECT,
		OP_ADD_DIRECT, OP_ADD_INDIRECT,
		OP_SUBTRACT_DIRECT, OP_SUBTRACT_INDIRECT,
		OP_MULTIPLY_DIRECT, OP_MULTIPLY_INDIRECT,
		OP_DIVIDE_DIRECT, OP_DIVIDE_INDIRECT:
		var value int32
		value, err = cpu.operand(prog, inst)
		if err != nil {
			return
		}
		cpu.Accumulator, err = doAlu(inst.Op, cpu.Accumulator, value)
	case OP_JUMP:
		cpu.Ip = int(inst.Operand)
	case OP_JINEG:
		if cpu.Accumulator < 0 {
			cpu.Ip = int(inst.Operand)
		}
	case OP_JIZERO:
		if cpu.Accumulator == 0 {
			cpu.Ip = int(inst.Operand)
		}
	case OP_HALT:
		cpu.Halted = true
		err = cpu.channel.Send(f("Program halted.\n"))
		// Keep the console in step with the caller's next read.
		cpu.channel.Discard()
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// doAlu performs the requested arithmetic, and returns the output value.
// Arithmetic wraps at 32 bits; division truncates toward zero.
func doAlu(op Op, input int32, value int32) (output int32, err error) {
	switch op {
	case OP_LOAD_DIRECT, OP_LOAD_INDIRECT:
		output = value
	case OP_ADD_DIRECT, OP_ADD_INDIRECT:
		output = input + value
	case OP_SUBTRACT_DIRECT, OP_SUBTRACT_INDIRECT:
		output = input - value
	case OP_MULTIPLY_DIRECT, OP_MULTIPLY_INDIRECT:
		output = input * value
	case OP_DIVIDE_DIRECT, OP_DIVIDE_INDIRECT:
		if value == 0 {
			output = input
			err = ErrDivideByZero
			return
		}
		output = input / value
	default:
		output = input
		err = ErrOpcodeInvalid
	}

	return
}
