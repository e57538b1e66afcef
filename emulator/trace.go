package emulator

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/uvm/cpu"
)

//go:generate go tool mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_tracer_test.go github.com/ezrec/uvm/emulator Tracer

// Tracer observes the emulator at instruction boundaries.
// A Tracer must not modify the CPU.
type Tracer interface {
	// Load is called after a program binary is loaded.
	Load(code []byte)
	// Step is called after the instruction at pc has executed.
	Step(pc int, inst cpu.Instruction, state *cpu.Cpu)
	// Fault is called when the instruction at pc fails.
	Fault(pc int, err error)
}

// LogTracer writes an execution trace to a logger.
type LogTracer struct {
	Logger    *log.Logger
	Registers bool // If set, dumps the written registers after every step.
}

var _ Tracer = (*LogTracer)(nil)

// NewLogTracer creates a tracer that logs to logger.
func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{Logger: logger, Registers: true}
}

func (lt *LogTracer) Load(code []byte) {
	lt.Logger.Printf("load: % x", code)
}

func (lt *LogTracer) Step(pc int, inst cpu.Instruction, state *cpu.Cpu) {
	lt.Logger.Printf("%03d: %v", pc, inst)

	if !lt.Registers {
		return
	}

	var regs []string
	for index, value := range state.Register.All() {
		regs = append(regs, fmt.Sprintf("r%d=%v", index, value))
	}
	lt.Logger.Printf("%03d: [%v]", pc, strings.Join(regs, " "))
}

func (lt *LogTracer) Fault(pc int, err error) {
	lt.Logger.Printf("%03d: %v", pc, err)
}
