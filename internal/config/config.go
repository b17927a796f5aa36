// Package config holds the toolchain profile compiled into the binary and
// resolves it against the host platform.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed toolchains.yaml
var defaultProfile []byte

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("config: invalid toolchain profile")

// Stage template keys.
const (
	StagePreprocess = "preprocess"
	StageCompile    = "compile"
	StageLink       = "link"
)

// Toolchain names the C toolchain binary used on a set of platforms.
type Toolchain struct {
	Name      string   `yaml:"name"`
	Binary    string   `yaml:"binary"`
	Platforms []string `yaml:"platforms"`
}

// Profile is the full toolchain profile.
type Profile struct {
	Toolchains []Toolchain         `yaml:"toolchains"`
	Stages     map[string][]string `yaml:"stages"`
}

// Platform is the result of resolving a Profile for one GOOS. A Platform
// with a nil Toolchain is unsupported.
type Platform struct {
	GOOS      string
	Toolchain *Toolchain
}

// Supported reports whether a toolchain is known for the platform.
func (p Platform) Supported() bool {
	return p.Toolchain != nil && p.Toolchain.Binary != ""
}

// Binary returns the toolchain binary, or "" when unsupported.
func (p Platform) Binary() string {
	if p.Toolchain == nil {
		return ""
	}
	return p.Toolchain.Binary
}

// Default parses the embedded profile.
func Default() (*Profile, error) {
	return Parse(defaultProfile)
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse toolchain profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every toolchain names a binary and at least one
// platform, that no platform is claimed twice, and that every stage has a
// template.
func (p *Profile) Validate() error {
	seen := make(map[string]string)
	for i, tc := range p.Toolchains {
		if tc.Binary == "" {
			return fmt.Errorf("%w: toolchain %d (%s) has no binary", ErrInvalidProfile, i, tc.Name)
		}
		if len(tc.Platforms) == 0 {
			return fmt.Errorf("%w: toolchain %d (%s) lists no platforms", ErrInvalidProfile, i, tc.Name)
		}
		for _, goos := range tc.Platforms {
			if other, ok := seen[goos]; ok {
				return fmt.Errorf("%w: platform %q claimed by %s and %s", ErrInvalidProfile, goos, other, tc.Name)
			}
			seen[goos] = tc.Name
		}
	}
	for _, stage := range []string{StagePreprocess, StageCompile, StageLink} {
		if len(p.Stages[stage]) == 0 {
			return fmt.Errorf("%w: no template for stage %q", ErrInvalidProfile, stage)
		}
	}
	return nil
}

// Resolve picks the toolchain for goos. An unknown goos yields an
// unsupported Platform rather than an error; callers fail when they first
// try to run a stage.
func (p *Profile) Resolve(goos string) Platform {
	for i := range p.Toolchains {
		for _, candidate := range p.Toolchains[i].Platforms {
			if candidate == goos {
				return Platform{GOOS: goos, Toolchain: &p.Toolchains[i]}
			}
		}
	}
	return Platform{GOOS: goos}
}

// Host resolves the profile for the running platform.
func (p *Profile) Host() Platform {
	return p.Resolve(runtime.GOOS)
}

// Template returns the argument template for a stage key.
func (p *Profile) Template(stage string) ([]string, bool) {
	tmpl, ok := p.Stages[stage]
	return tmpl, ok && len(tmpl) > 0
}
