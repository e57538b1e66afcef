package cpu

import (
	"errors"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	// Machine state errors
	ErrHalted    = errors.New(f("machine halted"))
	ErrFaulted   = errors.New(f("machine faulted"))
	ErrNotHalted = errors.New(f("machine has not halted"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrUnknownOpcode is a byte at pc that is not a defined opcode.
type ErrUnknownOpcode struct {
	Opcode uint8
	Pc     int
}

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode %v at pc %v", err.Opcode, err.Pc)
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	return
}

// ErrTruncated is an instruction that runs past the end of the program.
type ErrTruncated struct {
	Opcode Opcode
	Pc     int
}

func (err ErrTruncated) Error() string {
	return f("truncated %v at pc %v", err.Opcode, err.Pc)
}

func (err ErrTruncated) Is(target error) (ok bool) {
	_, ok = target.(ErrTruncated)
	return
}

// ErrProgramCounter is a decode position outside of the program.
type ErrProgramCounter struct {
	Pc   int
	Size int
}

func (err ErrProgramCounter) Error() string {
	return f("pc %v outside program of %v bytes", err.Pc, err.Size)
}

func (err ErrProgramCounter) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramCounter)
	return
}

// ErrOpcodeUndefined is an opcode value with no instruction behind it.
type ErrOpcodeUndefined uint8

func (err ErrOpcodeUndefined) Error() string {
	return f("undefined opcode %v", uint8(err))
}

// ErrOutOfBounds is a memory access outside of [0, Size).
type ErrOutOfBounds struct {
	Address int
	Size    int
}

func (err ErrOutOfBounds) Error() string {
	return f("invalid memory address %v (memory size %v)", err.Address, err.Size)
}

func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}

// ErrInstruction locates an execution fault.
type ErrInstruction struct {
	Pc          int
	Instruction Instruction
	Err         error
}

func (err ErrInstruction) Error() string {
	return f("pc %v: %v", err.Pc, err.Instruction) + ": " + err.Err.Error()
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrRange is a snapshot range that is reversed or outside of memory.
type ErrRange struct {
	Start int
	End   int
	Size  int
}

func (err ErrRange) Error() string {
	return f("memory range %v:%v invalid for memory size %v", err.Start, err.End, err.Size)
}

func (err ErrRange) Is(target error) (ok bool) {
	_, ok = target.(ErrRange)
	return
}

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrOperandCount is an instruction with the wrong number of operands.
type ErrOperandCount struct {
	Opcode Opcode
	Got    int
}

func (err ErrOperandCount) Error() string {
	return f("%v requires %v operands, got %v", err.Opcode, err.Opcode.Arity(), err.Got)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrOperandRange string

func (err ErrOperandRange) Error() string {
	return f("operand '%v' out of range 0..255", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
