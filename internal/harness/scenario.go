// Package harness provides a scenario test kit for the bookstore
// command interpreter.
//
// A scenario is a YAML script of command lines. The harness runs the
// script against a fresh database, records the full transcript (each
// command echoed with its output or the "Invalid" marker), and
// compares it against a golden file.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultRootPassword seeds the root account in scenario databases.
const DefaultRootPassword = "sjtu"

// Scenario defines one end-to-end interpreter test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RootPassword overrides the seeded root password.
	// Defaults to DefaultRootPassword.
	RootPassword string `yaml:"root_password,omitempty"`

	// Commands are the input lines fed to the interpreter in order.
	Commands []string `yaml:"commands"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(s.Commands) == 0 {
		return nil, fmt.Errorf("scenario %s: no commands", path)
	}
	if s.RootPassword == "" {
		s.RootPassword = DefaultRootPassword
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// file name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios: %w", err)
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
