package emulator

import (
	"fmt"
	"regexp"
	"strconv"
)

// Range is an inclusive range of memory cells.
type Range struct {
	Start int
	End   int
}

var reRange = regexp.MustCompile(`^(\d+):(\d+)$`)

// ParseRange parses a "start:end" memory range.
// Bounds are checked against memory when the snapshot is taken.
func ParseRange(text string) (r Range, err error) {
	match := reRange.FindStringSubmatch(text)
	if match == nil {
		err = ErrRangeSyntax(text)
		return
	}

	r.Start, err = strconv.Atoi(match[1])
	if err != nil {
		err = ErrRangeSyntax(text)
		return
	}

	r.End, err = strconv.Atoi(match[2])
	if err != nil {
		err = ErrRangeSyntax(text)
		return
	}

	return
}

// Len returns the number of cells in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}
