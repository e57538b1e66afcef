package internal

import (
	"flag"
	"strings"
)

// ParseFlags parses command line arguments. Every named required flag
// must be set, and no positional arguments may remain.
func ParseFlags(flags *flag.FlagSet, args []string, required ...string) (err error) {
	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 0 {
		err = ErrArguments(strings.Join(flags.Args(), " "))
		return
	}

	set := map[string]bool{}
	flags.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	for _, name := range required {
		if !set[name] {
			err = ErrFlagRequired(name)
			return
		}
	}

	return
}
