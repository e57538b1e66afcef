package cpu

import (
	"iter"
)

// Statement is a line of assembled code with its source location and
// generated instruction.
type Statement struct {
	LineNo int      // Source line, or 0 for disassembled code.
	Pc     int      // Offset of the instruction in the binary.
	Words  []string // Source words, after equate substitution.
	Instruction
}

// Program is an assembled program listing.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
}

// Debug returns the statement whose instruction starts at pc.
func (prog *Program) Debug(pc int) (dbg Debug) {
	for n, st := range prog.Statements {
		if pc >= st.Pc && pc < st.Pc+st.Width() {
			dbg = Debug{Statement: &prog.Statements[n]}
			break
		}
	}

	return
}

// Binary returns the encoded program.
func (prog *Program) Binary() (bins []byte, err error) {
	bins = []byte{}
	for _, inst := range prog.Instructions() {
		bins, err = inst.AppendBinary(bins)
		if err != nil {
			return
		}
	}

	return
}

// Instructions iterates over the program's instructions, by pc.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, inst Instruction) bool) {
		for _, st := range prog.Statements {
			if !yield(st.Pc, st.Instruction) {
				return
			}
		}
	}
}

// Disassemble decodes a program binary into a listing.
func Disassemble(code []byte) (prog *Program, err error) {
	prog = &Program{}

	for pc := 0; pc < len(code); {
		var inst Instruction
		var next int
		inst, next, err = Decode(code, pc)
		if err != nil {
			return
		}
		prog.Statements = append(prog.Statements, Statement{Pc: pc, Instruction: inst})
		pc = next
	}

	return
}
