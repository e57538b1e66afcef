package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/uvm/artifact"
	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/emulator"
	"github.com/ezrec/uvm/internal"
)

var _ = Describe("uvm", func() {
	var (
		dir    string
		stderr *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "uvm")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		stderr = &bytes.Buffer{}
	})

	binary := func(code ...byte) string {
		name := filepath.Join(dir, "prog.bin")
		Expect(os.WriteFile(name, code, 0644)).To(Succeed())
		return name
	}

	interpret := func(args ...string) error {
		return run(append([]string{"uvm"}, args...), artifact.DirFS(dir), stderr)
	}

	result := func() []uint32 {
		inf, err := os.Open(filepath.Join(dir, "result.json"))
		Expect(err).NotTo(HaveOccurred())
		defer inf.Close()

		res, err := artifact.ReadResult(inf)
		Expect(err).NotTo(HaveOccurred())
		return res.Memory
	}

	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}

	scenario := []byte{
		9, 0, 1, 10,
		9, 0, 2, 42,
		27, 0, 1, 2,
		12, 0, 1, 0, 3,
	}

	Context("with a valid program", func() {
		It("should save the memory range", func() {
			input := binary(scenario...)

			Expect(interpret("-i", input, "-r", "10:10", "-o", "result.json")).To(Succeed())
			Expect(result()).To(Equal([]uint32{42}))
		})

		It("should save a wider range", func() {
			input := binary(scenario...)

			Expect(interpret("-i", input, "-r", "8:11", "-o", "result.json")).To(Succeed())
			Expect(result()).To(Equal([]uint32{0, 0, 42, 0}))

			text, err := os.ReadFile(filepath.Join(dir, "result.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(text)).To(HavePrefix("{\n  \"memory\": [\n"))
		})

		It("should run an empty program", func() {
			input := binary()

			Expect(interpret("-i", input, "-r", "0:255", "-o", "result.json")).To(Succeed())
			Expect(result()).To(HaveLen(256))
		})

		It("should honor the memory size", func() {
			input := binary(9, 0, 1, 15, 9, 0, 2, 7, 27, 0, 1, 2)

			Expect(interpret("-m", "16", "-i", input, "-r", "15:15", "-o", "result.json")).To(Succeed())
			Expect(result()).To(Equal([]uint32{7}))

			err := interpret("-m", "16", "-i", input, "-r", "15:16", "-o", "result.json")
			Expect(err).To(MatchError(cpu.ErrRange{Start: 15, End: 16, Size: 16}))
		})

		It("should trace each instruction", func() {
			input := binary(scenario...)

			Expect(interpret("-t", "-i", input, "-r", "10:10", "-o", "result.json")).To(Succeed())

			trace := stderr.String()
			Expect(trace).To(ContainSubstring("000: LOAD_CONST 0 1 10\n"))
			Expect(trace).To(ContainSubstring("012: READ_MEM 0 1 0 3\n"))
			Expect(trace).To(ContainSubstring("012: [r1=10 r2=42 r3=42]\n"))
		})

		It("should list the program in verbose mode", func() {
			input := binary(scenario...)

			Expect(interpret("-v", "-i", input, "-r", "10:10", "-o", "result.json")).To(Succeed())

			listing := stderr.String()
			Expect(listing).To(ContainSubstring("008: WRITE_MEM 0 1 2\n"))
			Expect(listing).To(ContainSubstring("result.json: 1 cells from 10:10\n"))
		})
	})

	Context("with a faulting program", func() {
		DescribeTable("should write nothing",
			func(code []byte, expected error) {
				input := binary(code...)

				err := interpret("-i", input, "-r", "0:0", "-o", "result.json")
				Expect(err).To(MatchError(expected))

				var runtime *emulator.ErrRuntime
				Expect(errors.As(err, &runtime)).To(BeTrue())

				Expect(exists("result.json")).To(BeFalse())
			},
			Entry("unknown opcode", []byte{0x05}, cpu.ErrUnknownOpcode{Opcode: 5, Pc: 0}),
			Entry("truncated instruction", []byte{12}, cpu.ErrTruncated{Opcode: cpu.OP_READ_MEM, Pc: 0}),
			Entry("read out of bounds", []byte{9, 0, 1, 255, 12, 0, 1, 1, 2}, cpu.ErrOutOfBounds{}),
			Entry("read just past the end", []byte{9, 0, 1, 128, 12, 0, 1, 128, 2}, cpu.ErrOutOfBounds{}),
		)

		It("should report source lines from the listing", func() {
			input := binary(9, 0, 1, 200, 12, 0, 1, 100, 2)
			listing := filepath.Join(dir, "prog.json")
			Expect(os.WriteFile(listing, []byte(strings.Join([]string{
				`{`,
				`  "instruction_3": {"mnemonic": "LOAD_CONST", "A": 0, "B": 1, "C": 200},`,
				`  "instruction_7": {"mnemonic": "READ_MEM", "A": 0, "B": 1, "C": 100, "D": 2}`,
				`}`,
			}, "\n")), 0644)).To(Succeed())

			err := interpret("-l", listing, "-i", input, "-r", "0:0", "-o", "result.json")
			Expect(err).To(MatchError(cpu.ErrOutOfBounds{Address: 300, Size: 256}))

			var runtime *emulator.ErrRuntime
			Expect(errors.As(err, &runtime)).To(BeTrue())
			Expect(runtime.Pc).To(Equal(4))
			Expect(runtime.LineNo).To(Equal(7))
			Expect(exists("result.json")).To(BeFalse())
		})

		It("should reject a listing of another program", func() {
			input := binary(9, 0, 1, 201)
			listing := filepath.Join(dir, "prog.json")
			Expect(os.WriteFile(listing,
				[]byte(`{"instruction_1": {"mnemonic": "LOAD_CONST", "A": 0, "B": 1, "C": 200}}`),
				0644)).To(Succeed())

			err := interpret("-l", listing, "-i", input, "-r", "0:0", "-o", "result.json")
			Expect(err).To(MatchError(emulator.ErrListing))
		})
	})

	Context("with bad arguments", func() {
		It("should require the input, range and output", func() {
			Expect(interpret("-i", "prog.bin", "-r", "0:0")).To(MatchError(internal.ErrFlagRequired("o")))
			Expect(interpret("-i", "prog.bin", "-o", "result.json")).To(MatchError(internal.ErrFlagRequired("r")))
		})

		It("should reject a malformed range after the run", func() {
			input := binary(scenario...)

			err := interpret("-i", input, "-r", "10-10", "-o", "result.json")
			Expect(err).To(MatchError(emulator.ErrRangeSyntax("10-10")))
			Expect(exists("result.json")).To(BeFalse())
		})

		It("should reject a reversed range", func() {
			input := binary(scenario...)

			err := interpret("-i", input, "-r", "11:10", "-o", "result.json")
			Expect(err).To(MatchError(cpu.ErrRange{Start: 11, End: 10, Size: 256}))
			Expect(exists("result.json")).To(BeFalse())
		})

		It("should reject an empty memory", func() {
			input := binary(scenario...)

			err := interpret("-m", "0", "-i", input, "-r", "0:0", "-o", "result.json")
			Expect(err).To(MatchError(emulator.ErrMemorySize(0)))
		})

		It("should fail on a missing binary", func() {
			err := interpret("-i", filepath.Join(dir, "missing.bin"), "-r", "0:0", "-o", "result.json")
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})
})
