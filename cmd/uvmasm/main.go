// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/uvm/artifact"
	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/emulator"
	"github.com/ezrec/uvm/internal"
)

// run assembles a source file into a program binary and its JSON log.
// Either both artifacts are written, or neither.
func run(args []string, filesys artifact.CreateFS, stderr io.Writer) (err error) {
	var input string
	var output string
	var logfile string
	var verbose bool

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&input, "i", "", "Assembly source file")
	flags.StringVar(&output, "o", "", "Program binary output file")
	flags.StringVar(&logfile, "l", "", "JSON log output file")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	err = internal.ParseFlags(flags, args[1:], "i", "o", "l")
	if err != nil {
		return
	}

	logger := log.New(stderr, "", 0)

	inf, err := os.Open(input)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emulator.NewEmulator().Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		err = internal.ErrFile{Name: input, Err: err}
		return
	}

	code, err := prog.Binary()
	if err != nil {
		err = internal.ErrFile{Name: input, Err: err}
		return
	}

	var written []string
	defer func() {
		if err != nil {
			for _, name := range written {
				_ = filesys.Remove(name)
			}
		}
	}()

	err = artifact.WriteFile(filesys, output, func(w io.Writer) error {
		return artifact.WriteBinary(w, code)
	})
	if err != nil {
		err = internal.ErrFile{Name: output, Err: err}
		return
	}
	written = append(written, output)

	err = artifact.WriteFile(filesys, logfile, func(w io.Writer) error {
		return artifact.WriteLog(w, artifact.NewLog(prog))
	})
	if err != nil {
		err = internal.ErrFile{Name: logfile, Err: err}
		return
	}
	written = append(written, logfile)

	if verbose {
		logger.Printf("%v: %v instructions, %v bytes", output, len(prog.Statements), len(code))
		logger.Printf("%v: %v entries", logfile, len(prog.Statements))
	}

	return
}

func main() {
	log.SetFlags(0)

	err := run(os.Args, artifact.DirFS(""), os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	}
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	atexit.Exit(0)
}
