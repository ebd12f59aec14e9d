package renderer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ChainSafe/tvm-asm/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIssues() []*analyzer.Issue {
	return []*analyzer.Issue{
		{
			Source:   &analyzer.IssueSource{File: "sample.tvm", Line: 2, Column: 8, Offset: 11},
			Message:  "register: control register c6 is out of range",
			Severity: analyzer.IssueSeverityCritical,
		},
		{
			Source:   &analyzer.IssueSource{File: "sample.tvm", Line: 1, Column: 1, Offset: 0},
			Message:  "mnemonic FOO is not allowed by the tvm profile",
			Severity: analyzer.IssueSeverityWarning,
		},
	}
}

func TestTextRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewTextRenderer(nil)
	require.NoError(t, r.Render(sampleIssues(), &out))

	text := out.String()
	assert.Contains(t, text, "Critical Issues: 1")
	assert.Contains(t, text, "sample.tvm:2:8")
	// Sorted by offset: the warning at offset 0 comes first.
	assert.Less(t, bytes.Index(out.Bytes(), []byte("FOO")), bytes.Index(out.Bytes(), []byte("c6")))
	assert.Equal(t, "text", r.Format())
}

func TestTextRendererEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewTextRenderer(nil).Render(nil, &out))
	assert.Contains(t, out.String(), "No issues")
}

func TestJSONRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewJSONRenderer()
	require.NoError(t, r.Render(sampleIssues(), &out))
	assert.Equal(t, "json", r.Format())

	var decoded []*analyzer.Issue
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, analyzer.IssueSeverityCritical, decoded[0].Severity)
	assert.Equal(t, "sample.tvm", decoded[0].Source.File)
}
