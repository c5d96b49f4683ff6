package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bookstore/internal/engine"
	"bookstore/internal/store"
)

// invalidLine mirrors the transport's reserved rejection marker.
const invalidLine = "Invalid"

// Result holds the outcome of running a scenario.
type Result struct {
	// Transcript is the full session: every command echoed as
	// "> command" followed by its output, or the "Invalid" marker
	// when rejected. quit/exit terminates the transcript with no
	// further lines.
	Transcript string

	// Quit reports whether the script terminated via quit/exit
	// rather than running out of commands.
	Quit bool
}

// Run executes a scenario against a fresh database at dbPath.
//
// The engine uses a fixed session token and a discard logger so the
// transcript is byte-deterministic across runs.
func Run(scenario *Scenario, dbPath string) (*Result, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.SeedRoot(ctx, scenario.RootPassword); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	eng := engine.New(st,
		engine.WithTokenGenerator(engine.FixedGenerator{Token: "scenario-" + scenario.Name}),
		engine.WithLogger(slog.New(slog.DiscardHandler)),
	)

	result := &Result{}
	var transcript strings.Builder
	for _, command := range scenario.Commands {
		fmt.Fprintf(&transcript, "> %s\n", command)

		output, err := eng.Execute(ctx, command)
		if errors.Is(err, engine.ErrQuit) {
			result.Quit = true
			break
		}
		if err != nil {
			transcript.WriteString(invalidLine + "\n")
			continue
		}
		transcript.WriteString(output)
	}

	result.Transcript = transcript.String()
	return result, nil
}
