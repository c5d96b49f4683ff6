package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPipeline feeds input lines to a fresh run command over the given
// database path and returns everything written to stdout.
func runPipeline(t *testing.T, dbPath, input string) (string, error) {
	t.Helper()

	// Pin the environment so ambient settings cannot leak in.
	t.Setenv("BOOKSTORE_ROOT_PASSWORD", "sjtu")
	t.Setenv("BOOKSTORE_VERBOSE", "false")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", "--db", dbPath})
	cmd.SetIn(strings.NewReader(input))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

func TestRun_WorkedSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookstore.db")

	input := strings.Join([]string{
		"su root sjtu",
		"select isbn-1",
		`modify -name="Go" -price=7.50`,
		"import 10 50.00",
		"buy isbn-1 2",
		"show finance",
		"quit",
	}, "\n")

	out, err := runPipeline(t, dbPath, input)
	require.NoError(t, err)
	assert.Equal(t, "15.00\n+ 15.00 - 50.00\n", out)
}

func TestRun_RejectionsPrintInvalid(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookstore.db")

	input := strings.Join([]string{
		"su root wrong",
		"frobnicate",
		"show",
	}, "\n")

	out, err := runPipeline(t, dbPath, input)
	require.NoError(t, err)
	assert.Equal(t, "Invalid\nInvalid\nInvalid\n", out)
}

func TestRun_QuitStopsProcessing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookstore.db")

	input := strings.Join([]string{
		"su root sjtu",
		"quit",
		"show",
	}, "\n")

	out, err := runPipeline(t, dbPath, input)
	require.NoError(t, err)
	assert.Empty(t, out, "lines after quit must not execute")
}

func TestRun_EOFTerminatesCleanly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookstore.db")

	out, err := runPipeline(t, dbPath, "su root sjtu\n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRun_StatePersistsBetweenInvocations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookstore.db")

	_, err := runPipeline(t, dbPath, strings.Join([]string{
		"su root sjtu",
		"passwd root sjtu changed",
		"select isbn-1",
		"import 5 10.00",
	}, "\n"))
	require.NoError(t, err)

	out, err := runPipeline(t, dbPath, strings.Join([]string{
		"su root changed",
		"show -ISBN=isbn-1",
	}, "\n"))
	require.NoError(t, err)
	assert.Equal(t, "isbn-1\t\t\t\t0.00\t5\n", out)
}

func TestRun_UnopenableDatabase(t *testing.T) {
	_, err := runPipeline(t, "/nonexistent/dir/bookstore.db", "")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_RejectsPositionalArguments(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", "extra"})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad flags", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
