// Package analyzer turns parse results into a report: every diagnostic
// becomes an issue, and profile-driven checks (mnemonic allow-list, nesting
// depth) run on top of the clean AST. These checks live outside the parser
// core on purpose: the grammar itself neither validates mnemonics nor limits
// nesting.
package analyzer

import (
	"fmt"
	"os"
	"sort"

	"github.com/ChainSafe/tvm-asm/asmparser"
	"github.com/ChainSafe/tvm-asm/asmparser/tvm"
	"github.com/ChainSafe/tvm-asm/common/lifo"
	"github.com/ChainSafe/tvm-asm/profile"
)

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze parses and checks the assembly source at path.
	Analyze(path string) ([]*Issue, error)

	// AnalyzeSource parses and checks in-memory source text; filename is
	// only used for reporting.
	AnalyzeSource(filename, source string) []*Issue
}

// IssueSeverity represents the severity level of an issue.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "CRITICAL"
	IssueSeverityWarning  IssueSeverity = "WARNING"
)

// Issue represents a single issue found by the analyzer.
type Issue struct {
	Source   *IssueSource  `json:"source"`
	Message  string        `json:"message"`
	Severity IssueSeverity `json:"severity"`
}

// IssueSource represents the location in the source where the issue originates.
type IssueSource struct {
	File   string `json:"file"`
	Line   int    `json:"line"`   // 1-based
	Column int    `json:"column"` // 1-based
	Offset int    `json:"offset"` // byte offset into the source
}

// analyzerImpl implements the Analyzer interface.
type analyzerImpl struct {
	profile *profile.VMProfile
	parser  asmparser.Parser
}

// New returns an analyzer for the given profile. A nil profile disables the
// profile-driven checks; parse diagnostics are always reported.
func New(prof *profile.VMProfile) Analyzer {
	return &analyzerImpl{profile: prof, parser: tvm.NewParser()}
}

func (a *analyzerImpl) Analyze(path string) ([]*Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}
	return a.AnalyzeSource(path, string(data)), nil
}

func (a *analyzerImpl) AnalyzeSource(filename, source string) []*Issue {
	instrs, diags := a.parser.Parse(source)
	lines := newLineIndex(source)

	issues := make([]*Issue, 0, len(diags))
	for _, d := range diags {
		issues = append(issues, &Issue{
			Source:   lines.locate(filename, d.Span.Start),
			Message:  fmt.Sprintf("%s: %s", d.Kind, d.Message),
			Severity: IssueSeverityCritical,
		})
	}
	if a.profile != nil {
		issues = append(issues, a.checkProfile(filename, instrs, lines)...)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Source.Offset < issues[j].Source.Offset
	})
	return issues
}

// blockFrame is one pending instruction sequence in the iterative AST walk.
type blockFrame struct {
	instrs []*asmparser.Instruction
	depth  int
}

// checkProfile walks the AST iteratively, so a pathologically nested input
// cannot exhaust the analyzer's call stack.
func (a *analyzerImpl) checkProfile(filename string, instrs []*asmparser.Instruction, lines *lineIndex) []*Issue {
	var issues []*Issue
	var stack lifo.Stack[blockFrame]
	stack.Push(blockFrame{instrs: instrs})

	for !stack.IsEmpty() {
		frame, _ := stack.Pop()
		for _, instr := range frame.instrs {
			if !a.profile.Allows(instr.Mnemonic) {
				issues = append(issues, &Issue{
					Source:   lines.locate(filename, instr.Span.Start),
					Message:  fmt.Sprintf("mnemonic %s is not allowed by the %s profile", instr.Mnemonic, a.profile.VMName),
					Severity: IssueSeverityWarning,
				})
			}
			for _, arg := range instr.Args {
				if arg.Kind != asmparser.ArgBlock {
					continue
				}
				depth := frame.depth + 1
				if max := a.profile.MaxNestingDepth; max > 0 && depth == max+1 {
					issues = append(issues, &Issue{
						Source:   lines.locate(filename, arg.Span.Start),
						Message:  fmt.Sprintf("continuation block exceeds the maximum nesting depth of %d", max),
						Severity: IssueSeverityWarning,
					})
				}
				stack.Push(blockFrame{instrs: arg.Block, depth: depth})
			}
		}
	}
	return issues
}

// lineIndex resolves byte offsets to 1-based line/column pairs.
type lineIndex struct {
	starts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (ix *lineIndex) locate(filename string, offset int) *IssueSource {
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	return &IssueSource{
		File:   filename,
		Line:   line,
		Column: offset - ix.starts[line-1] + 1,
		Offset: offset,
	}
}
