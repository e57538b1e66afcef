package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/uvm/artifact"
	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/internal"
)

var _ = Describe("uvmasm", func() {
	var (
		dir    string
		stderr *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "uvmasm")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		stderr = &bytes.Buffer{}
	})

	source := func(lines ...string) string {
		name := filepath.Join(dir, "prog.asm")
		Expect(os.WriteFile(name, []byte(strings.Join(lines, "\n")), 0644)).To(Succeed())
		return name
	}

	assemble := func(args ...string) error {
		return run(append([]string{"uvmasm"}, args...), artifact.DirFS(dir), stderr)
	}

	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}

	Context("with a valid program", func() {
		It("should write the binary and the log", func() {
			input := source(
				"# store 42 at 10, then read it back",
				"LOAD_CONST 0 1 10",
				"LOAD_CONST 0 2 42",
				"WRITE_MEM 0 1 2",
				"READ_MEM 0 1 0 3",
			)

			Expect(assemble("-i", input, "-o", "prog.bin", "-l", "prog.json")).To(Succeed())

			code, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal([]byte{
				9, 0, 1, 10,
				9, 0, 2, 42,
				27, 0, 1, 2,
				12, 0, 1, 0, 3,
			}))

			inf, err := os.Open(filepath.Join(dir, "prog.json"))
			Expect(err).NotTo(HaveOccurred())
			defer inf.Close()

			lg, err := artifact.ReadLog(inf)
			Expect(err).NotTo(HaveOccurred())
			Expect(lg.Records).To(HaveLen(4))
			Expect(lg.Records[0].Key()).To(Equal("instruction_2"))
			Expect(lg.Records[3].Key()).To(Equal("instruction_5"))
			Expect(lg.Records[3].Mnemonic).To(Equal("READ_MEM"))
			Expect(*lg.Records[3].D).To(Equal(uint8(3)))
			Expect(lg.Records[0].D).To(BeNil())
		})

		It("should write empty artifacts for an empty program", func() {
			input := source("# nothing", "")

			Expect(assemble("-i", input, "-o", "prog.bin", "-l", "prog.json")).To(Succeed())

			code, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(BeEmpty())

			text, err := os.ReadFile(filepath.Join(dir, "prog.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(text)).To(Equal("{}\n"))
		})

		It("should provide the machine predefines", func() {
			input := source(
				"LOAD_CONST 0 1 $(MEMORY_SIZE - 1)",
				"LOAD_CONST 0 2 OP_OR",
				".equ TOP 200",
				"LOAD_CONST 0 3 $(TOP + LINENO)",
			)

			Expect(assemble("-i", input, "-o", "prog.bin", "-l", "prog.json")).To(Succeed())

			code, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal([]byte{
				9, 0, 1, 255,
				9, 0, 2, 17,
				9, 0, 3, 204,
			}))
		})

		It("should log a summary in verbose mode", func() {
			input := source("OR 0 1 2 3")

			Expect(assemble("-v", "-i", input, "-o", "prog.bin", "-l", "prog.json")).To(Succeed())
			Expect(stderr.String()).To(ContainSubstring("prog.bin: 1 instructions, 5 bytes"))
		})
	})

	Context("with an invalid program", func() {
		DescribeTable("should write nothing",
			func(lineno int, expected error, lines []string) {
				input := source(lines...)

				err := assemble("-i", input, "-o", "prog.bin", "-l", "prog.json")
				Expect(err).To(MatchError(expected))

				var syntax cpu.ErrSyntax
				Expect(err).To(BeAssignableToTypeOf(internal.ErrFile{}))
				Expect(err.(internal.ErrFile).Err).To(BeAssignableToTypeOf(syntax))
				Expect(err.(internal.ErrFile).Err.(cpu.ErrSyntax).LineNo).To(Equal(lineno))

				Expect(exists("prog.bin")).To(BeFalse())
				Expect(exists("prog.json")).To(BeFalse())
			},
			Entry("unknown mnemonic", 2, cpu.ErrMnemonicUnknown("JUMP"),
				[]string{"LOAD_CONST 0 1 10", "JUMP 0 1 2"}),
			Entry("operand count", 1, cpu.ErrOperandCount{Opcode: cpu.OP_OR, Got: 3},
				[]string{"OR 0 1 2"}),
			Entry("operand range", 3, cpu.ErrOperandRange("256"),
				[]string{"", "# big", "LOAD_CONST 0 1 256"}),
			Entry("operand not a number", 1, cpu.ErrParseNumber("ten"),
				[]string{"LOAD_CONST 0 1 ten"}),
			Entry("bad expression", 1, cpu.ErrParseExpression("1 +"),
				[]string{"LOAD_CONST 0 1 $(1 +)"}),
			Entry("redefined predefine", 1, cpu.ErrEquateDuplicate,
				[]string{".equ MEMORY_SIZE 12"}),
		)
	})

	Context("with bad arguments", func() {
		It("should require every file", func() {
			Expect(assemble("-i", "prog.asm", "-o", "prog.bin")).To(MatchError(internal.ErrFlagRequired("l")))
			Expect(assemble("-o", "prog.bin", "-l", "prog.json")).To(MatchError(internal.ErrFlagRequired("i")))
		})

		It("should reject positional arguments", func() {
			Expect(assemble("-i", "a", "-o", "b", "-l", "c", "d")).To(MatchError(internal.ErrArguments("d")))
		})

		It("should fail on a missing source", func() {
			err := assemble("-i", filepath.Join(dir, "missing.asm"), "-o", "prog.bin", "-l", "prog.json")
			Expect(err).To(MatchError(os.ErrNotExist))
			Expect(exists("prog.bin")).To(BeFalse())
		})

		It("should remove the binary when the log cannot be written", func() {
			input := source("LOAD_CONST 0 1 10")

			err := assemble("-i", input, "-o", "prog.bin", "-l", filepath.Join("missing", "prog.json"))
			Expect(err).To(HaveOccurred())
			Expect(exists("prog.bin")).To(BeFalse())
		})
	})
})
