package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/tvm-asm/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSourceDiagnostics(t *testing.T) {
	issues := New(nil).AnalyzeSource("test.tvm", "NOP\nPOPCTR c6")
	require.Len(t, issues, 1)

	assert.Equal(t, IssueSeverityCritical, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "register")
	assert.Equal(t, "test.tvm", issues[0].Source.File)
	assert.Equal(t, 2, issues[0].Source.Line)
	assert.Equal(t, 8, issues[0].Source.Column)
}

func TestAnalyzeSourceClean(t *testing.T) {
	issues := New(nil).AnalyzeSource("test.tvm", "PUSHCONT { NOP }\nDUP")
	assert.Empty(t, issues)
}

func TestAnalyzeSourceAllowList(t *testing.T) {
	prof := &profile.VMProfile{VMName: "tvm", AllowedMnemonics: []string{"PUSHCONT", "NOP"}}

	issues := New(prof).AnalyzeSource("test.tvm", "PUSHCONT { NOP DUP }")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "DUP")
}

func TestAnalyzeSourceNestingDepth(t *testing.T) {
	prof := &profile.VMProfile{VMName: "tvm", MaxNestingDepth: 1}

	issues := New(prof).AnalyzeSource("test.tvm", "PUSHCONT { PUSHCONT { NOP } }")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "nesting depth")

	issues = New(prof).AnalyzeSource("test.tvm", "PUSHCONT { NOP }")
	assert.Empty(t, issues)
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tvm")
	require.NoError(t, os.WriteFile(path, []byte("PUSH s(abc\nPUSH s2\n"), 0600))

	issues, err := New(nil).Analyze(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSeverityCritical, issues[0].Severity)
	assert.Equal(t, path, issues[0].Source.File)
	assert.Equal(t, 1, issues[0].Source.Line)

	_, err = New(nil).Analyze(filepath.Join(t.TempDir(), "missing.tvm"))
	assert.Error(t, err)
}
