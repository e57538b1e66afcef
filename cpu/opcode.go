package cpu

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Opcode is the one byte tag that starts every instruction.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LOAD_CONST = Opcode(9)  // LOAD_CONST
	OP_READ_MEM   = Opcode(12) // READ_MEM
	OP_OR         = Opcode(17) // OR
	OP_WRITE_MEM  = Opcode(27) // WRITE_MEM
)

const (
	OPERAND_MAX  = 0xff // Largest value of an operand byte.
	OPERANDS_MAX = 4    // Largest operand count of any opcode.
	WIDTH_MIN    = 4    // Width in bytes of the narrowest instruction.
)

// opcodeArity is the operand count of each defined opcode.
// It is the wire contract shared by the assembler and the decoder.
var opcodeArity = map[Opcode]int{
	OP_LOAD_CONST: 3,
	OP_READ_MEM:   4,
	OP_OR:         4,
	OP_WRITE_MEM:  3,
}

// mnemonicMap maps upper case mnemonics to their opcode.
var mnemonicMap = func() map[string]Opcode {
	mnemonics := make(map[string]Opcode, len(opcodeArity))
	for op := range opcodeArity {
		mnemonics[op.String()] = op
	}
	return mnemonics
}()

// LookupOpcode returns the opcode for a byte, if it is defined.
func LookupOpcode(b byte) (op Opcode, ok bool) {
	op = Opcode(b)
	ok = op.Valid()
	return
}

// LookupMnemonic returns the opcode for a mnemonic.
// Matching is case insensitive.
func LookupMnemonic(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

// Opcodes iterates over the defined opcodes, in ascending byte order.
func Opcodes() iter.Seq[Opcode] {
	return slices.Values(slices.Sorted(maps.Keys(opcodeArity)))
}

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	_, ok := opcodeArity[op]
	return ok
}

// Arity returns the operand count of the opcode, or 0 if undefined.
func (op Opcode) Arity() int {
	return opcodeArity[op]
}

// Width returns the total instruction width in bytes, or 0 if undefined.
func (op Opcode) Width() int {
	if !op.Valid() {
		return 0
	}
	return 1 + op.Arity()
}
