// Package cpu implements the execution engine and assembler for the UVM,
// a minimal register and memory machine.
//
// The machine has 256 registers, indexed by an operand byte, and a fixed
// size data memory. Four instructions exist: LOAD_CONST, READ_MEM,
// WRITE_MEM and OR. There is no control flow; the program counter only
// moves forward, by the width of each executed instruction, so every
// program terminates.
//
// The assembler encodes a line oriented text format into the binary
// instruction format that the CPU decodes, using the same opcode table.
package cpu
