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

func readBinary(name string) (code []byte, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return artifact.ReadBinary(inf)
}

func readListing(name string) (prog *cpu.Program, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	lg, err := artifact.ReadLog(inf)
	if err != nil {
		err = internal.ErrFile{Name: name, Err: err}
		return
	}

	prog, err = lg.Program()
	if err != nil {
		err = internal.ErrFile{Name: name, Err: err}
		return
	}

	return
}

// run executes a program binary, and saves a range of the final memory
// as JSON. Nothing is written if the program faults.
func run(args []string, filesys artifact.CreateFS, stderr io.Writer) (err error) {
	var input string
	var memrange string
	var output string
	var listing string
	var memsize uint
	var trace bool
	var verbose bool

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&input, "i", "", "Program binary file")
	flags.StringVar(&memrange, "r", "", "Memory range to save, as start:end")
	flags.StringVar(&output, "o", "", "JSON result output file")
	flags.StringVar(&listing, "l", "", "JSON log from the assembler, for source line numbers")
	flags.UintVar(&memsize, "m", cpu.MEMORY_SIZE, "Memory size, in cells")
	flags.BoolVar(&trace, "t", false, "Trace each instruction to stderr")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	err = internal.ParseFlags(flags, args[1:], "i", "r", "o")
	if err != nil {
		return
	}

	err = emulator.CheckMemorySize(memsize)
	if err != nil {
		return
	}

	logger := log.New(stderr, "", 0)

	code, err := readBinary(input)
	if err != nil {
		return
	}

	opts := []emulator.Option{emulator.WithMemorySize(memsize)}
	if trace {
		opts = append(opts, emulator.WithTracer(emulator.NewLogTracer(logger)))
	}

	emu := emulator.NewEmulator(opts...)
	emu.Verbose = verbose

	if verbose {
		prog, derr := cpu.Disassemble(code)
		for pc, inst := range prog.Instructions() {
			logger.Printf("%03d: %v", pc, inst)
		}
		if derr != nil {
			logger.Printf("%v", derr)
		}
	}

	if len(listing) != 0 {
		var prog *cpu.Program
		prog, err = readListing(listing)
		if err != nil {
			return
		}
		err = emu.LoadListing(code, prog)
		if err != nil {
			err = internal.ErrFile{Name: listing, Err: err}
			return
		}
	} else {
		emu.Load(code)
	}

	err = emu.Run()
	if err != nil {
		err = internal.ErrFile{Name: input, Err: err}
		return
	}

	r, err := emulator.ParseRange(memrange)
	if err != nil {
		return
	}

	values, err := emu.Snapshot(r)
	if err != nil {
		return
	}

	err = artifact.WriteFile(filesys, output, func(w io.Writer) error {
		return artifact.WriteResult(w, values)
	})
	if err != nil {
		err = internal.ErrFile{Name: output, Err: err}
		return
	}

	if verbose {
		logger.Printf("%v: %v cells from %v", output, len(values), r)
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
