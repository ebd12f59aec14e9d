// Package profile loads per-VM configuration consumed by the analyzer.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VMProfile represents the configuration for a specific VM. The parser itself
// is profile-agnostic; the profile only drives analyzer checks layered on top.
type VMProfile struct {
	VMName string `yaml:"vm"`
	// AllowedMnemonics restricts the instruction set when non-empty.
	AllowedMnemonics []string `yaml:"allowed_mnemonics"`
	// MaxNestingDepth caps continuation-block nesting when positive. The
	// grammar itself is unbounded; this is the external limit for callers
	// that need one.
	MaxNestingDepth int `yaml:"max_nesting_depth"`
}

// LoadProfile loads a VM profile from a YAML file.
func LoadProfile(filename string) (*VMProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	var profile VMProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if profile.MaxNestingDepth < 0 {
		return nil, fmt.Errorf("invalid max_nesting_depth: %d", profile.MaxNestingDepth)
	}
	return &profile, nil
}

// Allows reports whether the profile permits the given mnemonic. An empty
// allow-list permits everything.
func (p *VMProfile) Allows(mnemonic string) bool {
	if len(p.AllowedMnemonics) == 0 {
		return true
	}
	for _, m := range p.AllowedMnemonics {
		if m == mnemonic {
			return true
		}
	}
	return false
}
