package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction.
//
// Operands are positional, A through D. Only the first Opcode.Arity()
// operands are meaningful; the remainder are zero. Operand A is carried
// by every instruction but is not consulted by any of them.
type Instruction struct {
	Opcode   Opcode
	Operands [OPERANDS_MAX]uint8
}

// MakeLoadConst creates a LOAD_CONST instruction: r[b] = c
func MakeLoadConst(a, b, c uint8) Instruction {
	return Instruction{Opcode: OP_LOAD_CONST, Operands: [OPERANDS_MAX]uint8{a, b, c}}
}

// MakeReadMem creates a READ_MEM instruction: r[d] = mem[r[b] + c]
func MakeReadMem(a, b, c, d uint8) Instruction {
	return Instruction{Opcode: OP_READ_MEM, Operands: [OPERANDS_MAX]uint8{a, b, c, d}}
}

// MakeWriteMem creates a WRITE_MEM instruction: mem[r[b]] = r[c]
func MakeWriteMem(a, b, c uint8) Instruction {
	return Instruction{Opcode: OP_WRITE_MEM, Operands: [OPERANDS_MAX]uint8{a, b, c}}
}

// MakeOr creates an OR instruction: r[d] = r[b] | r[c]
func MakeOr(a, b, c, d uint8) Instruction {
	return Instruction{Opcode: OP_OR, Operands: [OPERANDS_MAX]uint8{a, b, c, d}}
}

// NewInstruction creates an instruction from an opcode and its operands.
func NewInstruction(op Opcode, operands ...uint8) (inst Instruction, err error) {
	if !op.Valid() {
		err = ErrOpcodeUndefined(op)
		return
	}

	if len(operands) != op.Arity() {
		err = ErrOperandCount{Opcode: op, Got: len(operands)}
		return
	}

	inst.Opcode = op
	copy(inst.Operands[:], operands)

	return
}

func (inst Instruction) A() uint8 { return inst.Operands[0] }
func (inst Instruction) B() uint8 { return inst.Operands[1] }
func (inst Instruction) C() uint8 { return inst.Operands[2] }
func (inst Instruction) D() uint8 { return inst.Operands[3] }

// Args returns the meaningful operands.
func (inst Instruction) Args() []uint8 {
	return inst.Operands[:inst.Opcode.Arity()]
}

// Width returns the encoded size of the instruction in bytes.
func (inst Instruction) Width() int {
	return inst.Opcode.Width()
}

// AppendBinary appends the encoded instruction to buf.
func (inst Instruction) AppendBinary(buf []byte) ([]byte, error) {
	if !inst.Opcode.Valid() {
		return buf, ErrOpcodeUndefined(inst.Opcode)
	}

	buf = append(buf, byte(inst.Opcode))
	buf = append(buf, inst.Args()...)

	return buf, nil
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	words := []string{inst.Opcode.String()}
	for _, arg := range inst.Args() {
		words = append(words, fmt.Sprintf("%d", arg))
	}

	return strings.Join(words, " ")
}

// Decode decodes the instruction at pc in buf, returning the
// instruction and the pc of the instruction that follows it.
//
// Decode only checks that the opcode is defined and that all of its
// operand bytes are present.
func Decode(buf []byte, pc int) (inst Instruction, next int, err error) {
	if pc < 0 || pc >= len(buf) {
		err = ErrProgramCounter{Pc: pc, Size: len(buf)}
		return
	}

	op, ok := LookupOpcode(buf[pc])
	if !ok {
		err = ErrUnknownOpcode{Opcode: buf[pc], Pc: pc}
		return
	}

	width := op.Width()
	if pc+width > len(buf) {
		err = ErrTruncated{Opcode: op, Pc: pc}
		return
	}

	inst.Opcode = op
	copy(inst.Operands[:], buf[pc+1:pc+width])
	next = pc + width

	return
}
