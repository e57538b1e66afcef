package internal

import (
	"fmt"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

// ErrArguments are unexpected positional arguments.
type ErrArguments string

func (err ErrArguments) Error() string {
	return f("unknown arguments: %v", string(err))
}

// ErrFlagRequired is a required flag that was not given.
type ErrFlagRequired string

func (err ErrFlagRequired) Error() string {
	return f("flag -%v is required", string(err))
}

// ErrFile locates an error in a named file.
type ErrFile struct {
	Name string
	Err  error
}

func (err ErrFile) Error() string {
	return fmt.Sprintf("%v: %v", err.Name, err.Err)
}

func (err ErrFile) Unwrap() error {
	return err.Err
}
