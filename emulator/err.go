package emulator

import (
	"errors"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	ErrListing = errors.New(f("listing does not match program binary"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %v %v", err.Pc, err.Err)
	}
	return f("pc %v line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrRangeSyntax is a memory range that is not of the form start:end.
type ErrRangeSyntax string

func (err ErrRangeSyntax) Error() string {
	return f("memory range must be start:end, got '%v'", string(err))
}

// ErrMemorySize is a memory size that cannot be used.
type ErrMemorySize int

func (err ErrMemorySize) Error() string {
	return f("memory size %v invalid", int(err))
}
