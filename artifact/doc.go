// Package artifact reads and writes the files exchanged by the
// assembler and the interpreter: program binaries, the assembler's
// diagnostic log, and the interpreter's memory result.
package artifact
