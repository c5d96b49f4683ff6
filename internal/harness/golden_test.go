package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarios runs every YAML scenario under testdata/scenarios and
// compares its transcript against the matching golden file.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "no scenarios found")

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
