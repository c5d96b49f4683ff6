package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/store"
)

// newTestEngine opens a fresh store in a temp directory, seeds the root
// account with password "sjtu", and returns an engine over it.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "bookstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.SeedRoot(context.Background(), "sjtu"))

	return New(st,
		WithTokenGenerator(FixedGenerator{Token: "test-session"}),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
}

// mustExec runs a line that is expected to succeed and returns its
// output.
func mustExec(t *testing.T, e *Engine, line string) string {
	t.Helper()
	out, err := e.Execute(context.Background(), line)
	require.NoError(t, err, "command %q", line)
	return out
}

// mustFail runs a line that is expected to be rejected and returns the
// error for classification.
func mustFail(t *testing.T, e *Engine, line string) error {
	t.Helper()
	out, err := e.Execute(context.Background(), line)
	require.Error(t, err, "command %q", line)
	assert.Empty(t, out, "rejected command %q must produce no output", line)
	return err
}

func TestExecute_BlankLine(t *testing.T) {
	e := newTestEngine(t)

	out, err := e.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = e.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExecute_UnknownCommand(t *testing.T) {
	e := newTestEngine(t)

	err := mustFail(t, e, "frobnicate")
	assert.True(t, IsSyntaxError(err))
}

func TestExecute_UnterminatedQuote(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	err := mustFail(t, e, `show -name="open`)
	assert.True(t, IsSyntaxError(err))
}

func TestExecute_Quit(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Execute(context.Background(), "quit")
	assert.ErrorIs(t, err, ErrQuit)

	_, err = e.Execute(context.Background(), "exit")
	assert.ErrorIs(t, err, ErrQuit)
}

func TestExecute_QuitWithArguments(t *testing.T) {
	e := newTestEngine(t)

	err := mustFail(t, e, "quit now")
	assert.True(t, IsSyntaxError(err))
	assert.NotErrorIs(t, err, ErrQuit)
}

func TestExecute_PrivilegeThresholds(t *testing.T) {
	e := newTestEngine(t)

	// Visitor (empty stack, privilege 0) is below every threshold
	// except register/su/logout.
	for _, line := range []string{
		"show",
		"buy isbn-1 1",
		"passwd root sjtu newpw",
		"select isbn-1",
		"modify -price=1",
		"import 1 1",
		"useradd u pw 1 name",
		"delete u",
		"show finance",
		"log",
		"report finance",
	} {
		err := mustFail(t, e, line)
		assert.True(t, IsAuthorizationError(err), "visitor running %q", line)
	}
}

func TestExecute_CustomerThresholds(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")
	mustExec(t, e, "register carol pw Carol")
	mustExec(t, e, "su carol pw")

	// Privilege 1 clears show/buy but not the staff/owner commands.
	mustExec(t, e, "show")
	for _, line := range []string{
		"select isbn-1",
		"useradd u pw 1 name",
		"show finance",
	} {
		err := mustFail(t, e, line)
		assert.True(t, IsAuthorizationError(err), "customer running %q", line)
	}
}

func TestExecute_ShowFinanceRouting(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	// "show finance" must hit the finance handler, not the catalog
	// search with a stray argument.
	out := mustExec(t, e, "show finance")
	assert.Equal(t, "+ 0.00 - 0.00\n", out)
}

func TestCurrentPrivilege_EmptyStack(t *testing.T) {
	e := newTestEngine(t)

	priv, err := e.currentPrivilege(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, priv)
}
