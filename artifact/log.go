package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/uvm/cpu"
)

const LOG_KEY_PREFIX = "instruction_"

// LogEntry is the diagnostic record of one assembled instruction.
type LogEntry struct {
	Mnemonic string `json:"mnemonic"`
	A        uint8  `json:"A"`
	B        uint8  `json:"B"`
	C        uint8  `json:"C"`
	D        *uint8 `json:"D,omitempty"` // Only for four operand instructions.
}

// NewLogEntry creates the log entry for an instruction.
func NewLogEntry(inst cpu.Instruction) (entry LogEntry) {
	entry = LogEntry{
		Mnemonic: inst.Opcode.String(),
		A:        inst.A(),
		B:        inst.B(),
		C:        inst.C(),
	}
	if inst.Opcode.Arity() == cpu.OPERANDS_MAX {
		d := inst.D()
		entry.D = &d
	}

	return
}

// Instruction converts the entry back to an instruction.
func (entry LogEntry) Instruction() (inst cpu.Instruction, err error) {
	op, ok := cpu.LookupMnemonic(entry.Mnemonic)
	if !ok {
		err = cpu.ErrMnemonicUnknown(entry.Mnemonic)
		return
	}

	operands := []uint8{entry.A, entry.B, entry.C}
	if entry.D != nil {
		operands = append(operands, *entry.D)
	}

	return cpu.NewInstruction(op, operands...)
}

// LogRecord is a log entry and the source line it was assembled from.
type LogRecord struct {
	LineNo int
	LogEntry
}

// Key returns the JSON object key of the record.
func (rec LogRecord) Key() string {
	return fmt.Sprintf("%s%d", LOG_KEY_PREFIX, rec.LineNo)
}

// Log is the assembler's diagnostic log, in source order.
//
// It is encoded as a JSON object keyed by instruction_<line>, with the
// keys in source order.
type Log struct {
	Records []LogRecord
}

// NewLog creates the diagnostic log of an assembled program.
func NewLog(prog *cpu.Program) (lg *Log) {
	lg = &Log{Records: []LogRecord{}}
	for _, st := range prog.Statements {
		lg.Records = append(lg.Records, LogRecord{
			LineNo:   st.LineNo,
			LogEntry: NewLogEntry(st.Instruction),
		})
	}

	return
}

func (lg *Log) MarshalJSON() (data []byte, err error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for n, rec := range lg.Records {
		if n > 0 {
			buf.WriteByte(',')
		}

		var key, value []byte
		key, err = json.Marshal(rec.Key())
		if err != nil {
			return
		}
		value, err = json.Marshal(rec.LogEntry)
		if err != nil {
			return
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	data = buf.Bytes()

	return
}

func (lg *Log) UnmarshalJSON(data []byte) (err error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		err = ErrLogObject
		return
	}

	records := []LogRecord{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return
		}

		key, _ := tok.(string)
		lineno, ok := parseLogKey(key)
		if !ok {
			err = ErrLogKey(key)
			return
		}

		rec := LogRecord{LineNo: lineno}
		err = dec.Decode(&rec.LogEntry)
		if err != nil {
			return
		}
		records = append(records, rec)
	}

	_, err = dec.Token()
	if err != nil {
		return
	}

	lg.Records = records

	return
}

func parseLogKey(key string) (lineno int, ok bool) {
	digits, ok := strings.CutPrefix(key, LOG_KEY_PREFIX)
	if !ok {
		return
	}

	lineno, err := strconv.Atoi(digits)
	ok = err == nil && lineno > 0

	return
}

// Program rebuilds a program listing from the log.
// Statement words and pcs are regenerated from the instructions.
func (lg *Log) Program() (prog *cpu.Program, err error) {
	prog = &cpu.Program{}

	pc := 0
	for _, rec := range lg.Records {
		var inst cpu.Instruction
		inst, err = rec.Instruction()
		if err != nil {
			err = ErrLogEntry{Key: rec.Key(), Err: err}
			return
		}

		prog.Statements = append(prog.Statements, cpu.Statement{
			LineNo:      rec.LineNo,
			Pc:          pc,
			Words:       strings.Fields(inst.String()),
			Instruction: inst,
		})
		pc += inst.Width()
	}

	return
}

// WriteLog writes the diagnostic log as indented JSON.
func WriteLog(w io.Writer, lg *Log) (err error) {
	data, err := json.MarshalIndent(lg, "", "  ")
	if err != nil {
		return
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return
}

// ReadLog reads a diagnostic log.
func ReadLog(r io.Reader) (lg *Log, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	lg = &Log{}
	err = json.Unmarshal(data, lg)
	if err != nil {
		lg = nil
		return
	}

	return
}
