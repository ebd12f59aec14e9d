package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/tvm-asm/analyzer"
	"github.com/ChainSafe/tvm-asm/profile"
	"github.com/ChainSafe/tvm-asm/renderer"
	"github.com/urfave/cli/v2"
)

var (
	VMProfileFlag = &cli.PathFlag{
		Name:     "vm-profile",
		Usage:    "Path to the VM profile config file",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: json, text",
		Required:    false,
		Value:       "text",
		DefaultText: "text",
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for report. Default: stdout",
		Required: false,
	}
)

var CheckCommand = &cli.Command{
	Name:        "check",
	Usage:       "Parses the assembly source and reports every issue found",
	Description: "Parses the assembly source and reports every issue found",
	ArgsUsage:   "<source-file>",
	Action:      checkSource,
	Flags: []cli.Flag{
		VMProfileFlag,
		FormatFlag,
		ReportOutputPathFlag,
	},
}

func checkSource(ctx *cli.Context) error {
	source := ctx.Args().First()
	if source == "" {
		return fmt.Errorf("missing source file argument")
	}

	var prof *profile.VMProfile
	if path := ctx.Path(VMProfileFlag.Name); path != "" {
		var err error
		prof, err = profile.LoadProfile(path)
		if err != nil {
			return fmt.Errorf("error loading profile: %w", err)
		}
	}

	issues, err := analyzer.New(prof).Analyze(source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	format := ctx.String(FormatFlag.Name)
	reportOutputPath := ctx.Path(ReportOutputPathFlag.Name)
	if err := writeReport(issues, format, reportOutputPath, prof); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	for _, issue := range issues {
		if issue.Severity == analyzer.IssueSeverityCritical {
			return cli.Exit("critical issues found", 1)
		}
	}
	return nil
}

// writeReport outputs the results in the specified format.
func writeReport(issues []*analyzer.Issue, format, outputPath string, prof *profile.VMProfile) error {
	output, closeOutput, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOutput()

	var rendererInstance renderer.Renderer
	switch format {
	case "text":
		rendererInstance = renderer.NewTextRenderer(prof)
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	return rendererInstance.Render(issues, output)
}

func openOutput(outputPath string) (*os.File, func(), error) {
	if outputPath == "" {
		return os.Stdout, func() {}, nil
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to determine absolute path: %w", err)
	}
	output, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open output file: %w", err)
	}
	return output, func() { _ = output.Close() }, nil
}
