package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

const (
	MEMORY_SIZE = 256 // Default number of memory cells.
)

var _cpu_defines = func() map[string]string {
	defines := map[string]string{
		"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
		"OPERAND_MAX":    fmt.Sprintf("%d", OPERAND_MAX),
	}
	for op := range Opcodes() {
		defines["OP_"+op.String()] = fmt.Sprintf("%d", uint8(op))
	}
	return defines
}()

// Cpu is the execution engine: a register bank, a memory, and a program
// counter stepping through a program binary.
//
// Execution is strictly linear. Each instruction advances the program
// counter by its own width, so a program of N bytes runs at most N/4
// instructions before it halts or faults.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Code     []byte    // Program binary. Not modified by execution.
	Pc       int       // Offset of the next instruction in Code.
	Register Registers // Register bank.
	Memory   []uint32  // Data memory.
	State    State     // Execution state.

	Ticks int // Instructions executed since a reset.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make([]uint32, size),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
// Only registers that have been written are listed.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	for index, value := range cpu.Register.All() {
		text += fmt.Sprintf("% 5s: %v\n", fmt.Sprintf("r%d", index), value)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros the program counter and statistics counters.
// - Returns to the running state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	clear(cpu.Memory)
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.State = STATE_RUNNING
}

// Load resets the CPU and installs a program binary.
// The CPU keeps its own copy of the binary.
func (cpu *Cpu) Load(code []byte) {
	cpu.Reset()
	cpu.Code = slices.Clone(code)

	if cpu.Verbose {
		log.Printf("cpu: loaded %v bytes", len(cpu.Code))
	}
}

// Fetch decodes the instruction at the program counter.
func (cpu *Cpu) Fetch() (inst Instruction, next int, err error) {
	return Decode(cpu.Code, cpu.Pc)
}

// Tick executes a single fetch-decode-execute cycle.
//
// ErrHalted is returned once the program counter has reached the end
// of the program. Any other error leaves the CPU in the faulted state,
// and all later ticks return ErrFaulted.
func (cpu *Cpu) Tick() (inst Instruction, err error) {
	err = cpu.ready()
	if err != nil {
		return
	}

	inst, _, err = cpu.Fetch()
	if err != nil {
		cpu.State = STATE_FAULTED
		return
	}

	err = cpu.Execute(inst)

	return
}

// Run ticks the CPU until the program halts or faults.
func (cpu *Cpu) Run() (err error) {
	for {
		_, err = cpu.Tick()
		if errors.Is(err, ErrHalted) {
			return nil
		}
		if err != nil {
			return
		}
	}
}

// ready returns ErrHalted or ErrFaulted when the CPU can not execute
// another instruction.
func (cpu *Cpu) ready() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		err = ErrHalted
		return
	case STATE_FAULTED:
		err = ErrFaulted
		return
	}

	if cpu.Pc >= len(cpu.Code) {
		cpu.State = STATE_HALTED
		err = ErrHalted
	}

	return
}

// Execute executes a single decoded instruction located at the program
// counter, then advances the program counter past it.
//
// A halted or faulted CPU is left untouched, and ErrHalted or ErrFaulted
// is returned. A faulting instruction changes neither registers nor memory.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	err = cpu.ready()
	if err != nil {
		return
	}

	defer func() {
		if err != nil {
			cpu.State = STATE_FAULTED
			err = ErrInstruction{Pc: cpu.Pc, Instruction: inst, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, inst)
	}

	if cpu.Pc+inst.Width() > len(cpu.Code) {
		err = ErrTruncated{Opcode: inst.Opcode, Pc: cpu.Pc}
		return
	}

	reg := &cpu.Register

	switch inst.Opcode {
	case OP_LOAD_CONST:
		reg.Set(inst.B(), uint32(inst.C()))
	case OP_READ_MEM:
		address := int(reg.Get(inst.B())) + int(inst.C())
		var value uint32
		value, err = cpu.readMemory(address)
		if err != nil {
			return
		}
		reg.Set(inst.D(), value)
	case OP_WRITE_MEM:
		address := int(reg.Get(inst.B()))
		value := reg.Get(inst.C())
		err = cpu.writeMemory(address, value)
		if err != nil {
			return
		}
	case OP_OR:
		reg.Set(inst.D(), reg.Get(inst.B())|reg.Get(inst.C()))
	default:
		err = ErrUnknownOpcode{Opcode: uint8(inst.Opcode), Pc: cpu.Pc}
		return
	}

	cpu.Pc += inst.Width()
	cpu.Ticks++

	if cpu.Pc == len(cpu.Code) {
		cpu.State = STATE_HALTED
	}

	return
}

// readMemory reads a memory cell.
func (cpu *Cpu) readMemory(address int) (value uint32, err error) {
	if address < 0 || address >= len(cpu.Memory) {
		err = ErrOutOfBounds{Address: address, Size: len(cpu.Memory)}
		return
	}

	value = cpu.Memory[address]
	return
}

// writeMemory writes a memory cell.
func (cpu *Cpu) writeMemory(address int, value uint32) (err error) {
	if address < 0 || address >= len(cpu.Memory) {
		err = ErrOutOfBounds{Address: address, Size: len(cpu.Memory)}
		return
	}

	cpu.Memory[address] = value
	return
}

// Snapshot returns a copy of memory cells start through end, inclusive.
// It is only available once the program has halted.
func (cpu *Cpu) Snapshot(start, end int) (values []uint32, err error) {
	if cpu.State != STATE_HALTED {
		err = ErrNotHalted
		return
	}

	if start < 0 || start > end || end >= len(cpu.Memory) {
		err = ErrRange{Start: start, End: end, Size: len(cpu.Memory)}
		return
	}

	values = slices.Clone(cpu.Memory[start : end+1])
	return
}
