package engine

import (
	"context"
	"fmt"
	"strconv"

	"bookstore/internal/validate"
)

// cmdShowFinance reports windowed income/expenditure totals.
//
//	show finance [count]
//
// Without a count the whole ledger is aggregated. With one, only the
// most recent count transactions are; the count must not exceed the
// ledger size, and count 0 prints a blank line without aggregating.
func (e *Engine) cmdShowFinance(ctx context.Context, args []string) (string, error) {
	limit := -1

	if len(args) > 0 {
		if len(args) != 1 {
			return "", syntaxErr("show finance", "expected at most one count, got %d args", len(args))
		}
		countStr := args[0]
		if !validate.Quantity(countStr) {
			return "", syntaxErr("show finance", "invalid count %q", countStr)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return "", syntaxErr("show finance", "invalid count %q", countStr)
		}

		if count == 0 {
			return "\n", nil
		}

		size, err := e.store.TransactionCount(ctx)
		if err != nil {
			return "", err
		}
		if count > size {
			return "", domainErr("show finance", "count %d exceeds ledger size %d", count, size)
		}
		limit = count
	}

	income, expenditure, err := e.store.FinanceTotals(ctx, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("+ %.2f - %.2f\n", income, expenditure), nil
}

// cmdLog prints the operation log.
//
// The log format is an unspecified extension point; the command is
// accepted and authorized but prints only a blank line.
func (e *Engine) cmdLog(ctx context.Context, args []string) (string, error) {
	if len(args) != 0 {
		return "", syntaxErr("log", "unexpected arguments")
	}
	return "\n", nil
}

// cmdReport prints a finance or employee report.
//
//	report finance
//	report employee
//
// Both report formats are unspecified extension points; the commands
// are accepted and authorized but print only a blank line.
func (e *Engine) cmdReport(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxErr("report", "expected finance or employee, got %d args", len(args))
	}
	switch args[0] {
	case "finance", "employee":
		return "\n", nil
	default:
		return "", syntaxErr("report", "unknown report %q", args[0])
	}
}
