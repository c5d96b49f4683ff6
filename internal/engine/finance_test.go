package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowFinance_WholeLedger(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")
	stockBook(t, e, "isbn-1", 10, "40.00")
	mustExec(t, e, "modify -price=5")
	mustExec(t, e, "buy isbn-1 2")

	out := mustExec(t, e, "show finance")
	assert.Equal(t, "+ 10.00 - 40.00\n", out)
}

func TestShowFinance_Window(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")
	stockBook(t, e, "isbn-1", 10, "40.00")
	mustExec(t, e, "modify -price=5")
	mustExec(t, e, "buy isbn-1 2")
	mustExec(t, e, "import 5 20.00")

	// Most recent 2: the sale and the second import.
	out := mustExec(t, e, "show finance 2")
	assert.Equal(t, "+ 10.00 - 20.00\n", out)
}

func TestShowFinance_ZeroCount(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	out := mustExec(t, e, "show finance 0")
	assert.Equal(t, "\n", out)
}

func TestShowFinance_CountExceedsLedger(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")
	stockBook(t, e, "isbn-1", 1, "1.00")

	err := mustFail(t, e, "show finance 2")
	assert.True(t, IsDomainError(err))
}

func TestShowFinance_InvalidCount(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	for _, line := range []string{
		"show finance -1",
		"show finance x",
		"show finance 1 2",
	} {
		err := mustFail(t, e, line)
		assert.True(t, IsSyntaxError(err), "line %q", line)
	}
}

func TestLogCommand(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	out := mustExec(t, e, "log")
	assert.Equal(t, "\n", out)

	err := mustFail(t, e, "log all")
	assert.True(t, IsSyntaxError(err))
}

func TestReportCommand(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "su root sjtu")

	assert.Equal(t, "\n", mustExec(t, e, "report finance"))
	assert.Equal(t, "\n", mustExec(t, e, "report employee"))

	err := mustFail(t, e, "report sales")
	assert.True(t, IsSyntaxError(err))
	err = mustFail(t, e, "report")
	assert.True(t, IsSyntaxError(err))
}
