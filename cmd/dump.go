package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChainSafe/tvm-asm/asmparser"
	"github.com/ChainSafe/tvm-asm/asmparser/tvm"
	"github.com/urfave/cli/v2"
)

var DumpCommand = &cli.Command{
	Name:        "dump",
	Usage:       "Parses the assembly source and dumps the AST",
	Description: "Parses the assembly source and dumps the AST",
	ArgsUsage:   "<source-file>",
	Action:      dumpAST,
	Flags: []cli.Flag{
		FormatFlag,
		ReportOutputPathFlag,
	},
}

func dumpAST(ctx *cli.Context) error {
	source := ctx.Args().First()
	if source == "" {
		return fmt.Errorf("missing source file argument")
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("error reading source file: %w", err)
	}
	instrs, diags := tvm.NewParser().Parse(string(data))

	output, closeOutput, err := openOutput(ctx.Path(ReportOutputPathFlag.Name))
	if err != nil {
		return err
	}
	defer closeOutput()

	switch format := ctx.String(FormatFlag.Name); format {
	case "json":
		return json.NewEncoder(output).Encode(struct {
			Instructions []*asmparser.Instruction `json:"instructions"`
			Diagnostics  []*asmparser.Diagnostic  `json:"diagnostics"`
		}{instrs, diags})
	case "text":
		for _, instr := range instrs {
			if err := writeInstructionText(output, instr, 0); err != nil {
				return err
			}
		}
		for _, d := range diags {
			if _, err := fmt.Fprintf(output, "# %s\n", d.Error()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

func writeInstructionText(w io.Writer, instr *asmparser.Instruction, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s", indent, instr.Mnemonic); err != nil {
		return err
	}
	for i, arg := range instr.Args {
		sep := " "
		if i > 0 {
			sep = ", "
		}
		if arg.Kind == asmparser.ArgBlock {
			if _, err := fmt.Fprintf(w, "%s{\n", sep); err != nil {
				return err
			}
			for _, inner := range arg.Block {
				if err := writeInstructionText(w, inner, depth+1); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s}", indent); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s", sep, formatArgument(arg)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func formatArgument(arg *asmparser.Argument) string {
	switch arg.Kind {
	case asmparser.ArgNatural:
		return arg.Natural.String()
	case asmparser.ArgStackRegister:
		if arg.StackReg < 0 {
			return fmt.Sprintf("s(%d)", arg.StackReg)
		}
		return fmt.Sprintf("s%d", arg.StackReg)
	case asmparser.ArgControlRegister:
		return fmt.Sprintf("c%d", arg.CtrlReg)
	case asmparser.ArgSlice:
		return arg.Slice.String()
	default:
		return "<invalid>"
	}
}
