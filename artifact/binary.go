package artifact

import (
	"io"
)

// ReadBinary reads a complete program binary.
func ReadBinary(r io.Reader) (code []byte, err error) {
	code, err = io.ReadAll(r)
	if err != nil {
		return
	}
	if code == nil {
		code = []byte{}
	}

	return
}

// WriteBinary writes a program binary.
func WriteBinary(w io.Writer, code []byte) (err error) {
	_, err = w.Write(code)
	return
}
