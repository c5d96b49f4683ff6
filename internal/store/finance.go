package store

import (
	"context"
	"fmt"
	"log/slog"
)

// Transaction is one ledger entry: an amount and a direction.
// The ledger is append-only; entries are never mutated or deleted.
type Transaction struct {
	Amount float64
	Income bool
}

// AddTransaction appends an entry to the finance ledger. Sales and
// restocks write their ledger entries inside the same transaction as
// the stock change (see Sell, Restock); this standalone form exists
// for tests and tooling.
func (s *Store) AddTransaction(ctx context.Context, t Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (amount, income) VALUES (?, ?)
	`, t.Amount, t.Income)
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}

	slog.Debug("transaction recorded", "amount", t.Amount, "income", t.Income)
	return nil
}

// TransactionCount returns the current size of the ledger.
func (s *Store) TransactionCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// FinanceTotals aggregates income and expenditure over the most
// recent limit transactions, or over the whole ledger when limit is
// negative. Each entry contributes to exactly one of the two totals.
// Entries are summed in insertion order for reproducible totals.
func (s *Store) FinanceTotals(ctx context.Context, limit int) (income, expenditure float64, err error) {
	query := `
		SELECT amount, income FROM (
			SELECT id, amount, income FROM transactions
			ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`
	args := []any{limit}
	if limit < 0 {
		query = `SELECT amount, income FROM transactions ORDER BY id ASC`
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("finance totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var amount float64
		var isIncome bool
		if err := rows.Scan(&amount, &isIncome); err != nil {
			return 0, 0, fmt.Errorf("finance totals: scan: %w", err)
		}
		if isIncome {
			income += amount
		} else {
			expenditure += amount
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("finance totals: %w", err)
	}
	return income, expenditure, nil
}
