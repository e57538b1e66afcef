package cpu

import (
	"iter"
)

const (
	REGISTER_COUNT = 256 // Registers are indexed by an operand byte.
)

// Registers is the register bank. Unwritten registers read as zero.
type Registers struct {
	value   [REGISTER_COUNT]uint32
	written [REGISTER_COUNT / 64]uint64
}

// Get returns the value of a register.
func (r *Registers) Get(index uint8) uint32 {
	return r.value[index]
}

// Set writes the value of a register.
func (r *Registers) Set(index uint8, value uint32) {
	r.value[index] = value
	r.written[index/64] |= 1 << (index % 64)
}

// Written returns true if the register has been set since the last reset.
func (r *Registers) Written(index uint8) bool {
	return (r.written[index/64] & (1 << (index % 64))) != 0
}

// All iterates over the written registers, in ascending index order.
func (r *Registers) All() iter.Seq2[uint8, uint32] {
	return func(yield func(index uint8, value uint32) bool) {
		for n := range REGISTER_COUNT {
			index := uint8(n)
			if !r.Written(index) {
				continue
			}
			if !yield(index, r.value[index]) {
				return
			}
		}
	}
}

// Reset zeros all registers.
func (r *Registers) Reset() {
	clear(r.value[:])
	clear(r.written[:])
}
