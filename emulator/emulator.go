// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/internal"
)

const (
	MEMORY_SIZE_MAX = 1 << 24 // Largest supported number of memory cells.
)

// CheckMemorySize verifies that a memory size can be emulated.
func CheckMemorySize(size uint) (err error) {
	if size == 0 || size > MEMORY_SIZE_MAX {
		err = ErrMemorySize(size)
	}
	return
}

// Emulator state. CPU + optional source listing + tracer.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Source listing of the loaded binary, if known.
	Tracer   Tracer       // Observer of instruction boundaries, if any.
}

// Option configures a new emulator.
type Option func(emu *Emulator)

// WithMemorySize sets the number of memory cells.
func WithMemorySize(size uint) Option {
	return func(emu *Emulator) {
		emu.Cpu = cpu.NewCpu(size)
	}
}

// WithTracer attaches an instruction tracer.
func WithTracer(tracer Tracer) Option {
	return func(emu *Emulator) {
		emu.Tracer = tracer
	}
}

// NewEmulator creates a new emulator.
func NewEmulator(opts ...Option) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(cpu.MEMORY_SIZE),
		Program: &cpu.Program{},
	}

	for _, opt := range opts {
		opt(emu)
	}

	return
}

// Defines returns an iterator over all of the defines, by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulator_defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%v", len(emu.Cpu.Memory)),
	}

	return internal.IterSeq2Sorted(internal.IterSeq2Concat(maps.All(emulator_defines),
		emu.Cpu.Defines(),
	))
}

// Load resets the machine and loads a program binary.
// Any previous source listing is discarded.
func (emu *Emulator) Load(code []byte) {
	emu.Program = &cpu.Program{}
	emu.load(code)
}

// LoadProgram resets the machine and loads an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	code, err := prog.Binary()
	if err != nil {
		return
	}

	emu.Program = prog
	emu.load(code)

	return
}

// LoadListing resets the machine and loads a program binary, using
// prog as its source listing. The listing must assemble to code.
func (emu *Emulator) LoadListing(code []byte, prog *cpu.Program) (err error) {
	listed, err := prog.Binary()
	if err != nil {
		return
	}

	if !bytes.Equal(listed, code) {
		err = ErrListing
		return
	}

	emu.Program = prog
	emu.load(code)

	return
}

func (emu *Emulator) load(code []byte) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(code)

	if emu.Tracer != nil {
		emu.Tracer.Load(emu.Cpu.Code)
	}
}

// LineNo returns the source line number of the instruction at the
// program counter, or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the machine has halted or faulted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			done = true
			if emu.Tracer != nil {
				emu.Tracer.Fault(pc, err)
			}
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	inst, err := emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	if emu.Tracer != nil {
		emu.Tracer.Step(pc, inst, emu.Cpu)
	}

	done = emu.Cpu.State == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
	}

	if emu.Verbose && err == nil {
		log.Printf("emulator: halted after %v instructions", emu.Cpu.Ticks)
	}

	return
}

// Snapshot returns the memory cells in the range, once halted.
func (emu *Emulator) Snapshot(r Range) (values []uint32, err error) {
	return emu.Cpu.Snapshot(r.Start, r.End)
}
