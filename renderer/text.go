// Package renderer provides a way to render parse reports in different formats.
package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ChainSafe/tvm-asm/analyzer"
	"github.com/ChainSafe/tvm-asm/profile"
)

// TextRenderer formats the parse report in a structured text format.
type TextRenderer struct {
	profile *profile.VMProfile
}

// NewTextRenderer creates a new instance of TextRenderer. The profile is
// optional and only feeds the report header.
func NewTextRenderer(profile *profile.VMProfile) Renderer {
	return &TextRenderer{profile: profile}
}

// Render formats and writes the parse report to the provided writer.
func (r *TextRenderer) Render(issues []*analyzer.Issue, output io.Writer) error {
	if len(issues) == 0 {
		_, err := io.WriteString(output, "No issues found.\n")
		return err
	}

	sorted := make([]*analyzer.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source.Offset < sorted[j].Source.Offset
	})

	numOfCriticalIssues := 0
	for _, issue := range sorted {
		if issue.Severity == analyzer.IssueSeverityCritical {
			numOfCriticalIssues++
		}
	}

	var report strings.Builder
	report.WriteString("==============================\n")
	report.WriteString("🔍 TVM Assembly Parse Report\n")
	report.WriteString("==============================\n\n")
	if r.profile != nil {
		report.WriteString(fmt.Sprintf("🖥 VM Name: %s\n\n", r.profile.VMName))
	}
	report.WriteString(fmt.Sprintf(" ❗ Critical Issues: %d\n", numOfCriticalIssues))
	report.WriteString(fmt.Sprintf("⚠️ Warnings: %d\n\n", len(sorted)-numOfCriticalIssues))
	report.WriteString("------------------------------\n")

	for i, issue := range sorted {
		report.WriteString(fmt.Sprintf("%d. [%s] %s:%d:%d %s\n",
			i+1, issue.Severity, issue.Source.File, issue.Source.Line, issue.Source.Column, issue.Message))
	}

	_, err := io.WriteString(output, report.String())
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
