// Package config loads the project manifest (lychee.yaml) that tells the
// CLI which module search roots to scan and which module holds the
// program's entry point.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the recognized source file extension for this
// language's modules.
const SourceFileExt = ".ly"

// Manifest is the top-level lychee.yaml configuration, parsed the way
// funxy parses funxy.yaml: a small yaml.v3-tagged struct.
type Manifest struct {
	// Roots lists directories searched for modules, relative to the
	// manifest's own directory.
	Roots []string `yaml:"roots"`

	// Entry names the module holding `main`, e.g. "app::main".
	Entry string `yaml:"entry"`
}

// Load reads and parses a lychee.yaml manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Entry == "" {
		return nil, fmt.Errorf("manifest %s: entry is required", path)
	}
	if len(m.Roots) == 0 {
		m.Roots = []string{"."}
	}
	return &m, nil
}

// IsTestMode indicates the program is running under `go test`, as a
// package-level gate in the teacher's own style. Nothing in this module
// reads it; verbose output is gated by clog.Verbose instead.
var IsTestMode = false
