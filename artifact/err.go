package artifact

import (
	"errors"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	ErrLogObject = errors.New(f("log must be a JSON object"))
)

// ErrLogKey is a log key that does not name a source line.
type ErrLogKey string

func (err ErrLogKey) Error() string {
	return f("log key '%v' is not instruction_<line>", string(err))
}

// ErrLogEntry locates a log entry that cannot be converted back to
// an instruction.
type ErrLogEntry struct {
	Key string
	Err error
}

func (err ErrLogEntry) Error() string {
	return f("log entry %v: %v", err.Key, err.Err)
}

func (err ErrLogEntry) Unwrap() error {
	return err.Err
}
