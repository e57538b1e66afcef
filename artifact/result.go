package artifact

import (
	"encoding/json"
	"io"
)

// Result is the interpreter's output: a copy of a range of memory.
type Result struct {
	Memory []uint32 `json:"memory"`
}

// WriteResult writes a memory snapshot as indented JSON.
func WriteResult(w io.Writer, values []uint32) (err error) {
	result := Result{Memory: values}
	if result.Memory == nil {
		result.Memory = []uint32{}
	}

	data, err := json.MarshalIndent(&result, "", "  ")
	if err != nil {
		return
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return
}

// ReadResult reads an interpreter result.
func ReadResult(r io.Reader) (result *Result, err error) {
	result = &Result{}
	err = json.NewDecoder(r).Decode(result)
	if err != nil {
		result = nil
		return
	}

	return
}
