package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tvm.yaml")
	content := `
vm: tvm
allowed_mnemonics:
  - NOP
  - PUSHCONT
max_nesting_depth: 16
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	prof, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "tvm", prof.VMName)
	assert.Equal(t, 16, prof.MaxNestingDepth)
	assert.True(t, prof.Allows("NOP"))
	assert.False(t, prof.Allows("DUP"))
}

func TestLoadProfileEmptyAllowList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vm: tvm\n"), 0600))

	prof, err := LoadProfile(path)
	require.NoError(t, err)
	assert.True(t, prof.Allows("ANYTHING"))
}

func TestLoadProfileInvalid(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_nesting_depth: -1\n"), 0600))
	_, err = LoadProfile(path)
	assert.Error(t, err)
}
