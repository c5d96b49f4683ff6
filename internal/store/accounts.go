package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"
)

// Account is one operator record.
type Account struct {
	UserID    string
	Password  string
	Username  string
	Privilege int
}

// ErrDuplicateKey is returned when inserting a record whose key is
// already present.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("record not found")

// SeedRoot creates the root account with privilege 7 if it does not
// already exist. Called once at startup; the password applies only on
// first creation.
func (s *Store) SeedRoot(ctx context.Context, password string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, password, username, privilege)
		VALUES ('root', ?, 'root', 7)
		ON CONFLICT(user_id) DO NOTHING
	`, password)
	if err != nil {
		return fmt.Errorf("seed root: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.Info("root account created", "user_id", "root", "privilege", 7)
	}
	return nil
}

// InsertAccount adds a new account. Returns ErrDuplicateKey if the
// userID is taken.
func (s *Store) InsertAccount(ctx context.Context, acc Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, password, username, privilege)
		VALUES (?, ?, ?, ?)
	`, acc.UserID, acc.Password, acc.Username, acc.Privilege)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert account %s: %w", acc.UserID, ErrDuplicateKey)
		}
		return fmt.Errorf("insert account %s: %w", acc.UserID, err)
	}

	slog.Debug("account created", "user_id", acc.UserID, "privilege", acc.Privilege)
	return nil
}

// GetAccount looks up an account by userID. Returns ErrNotFound if it
// does not exist.
func (s *Store) GetAccount(ctx context.Context, userID string) (Account, error) {
	var acc Account
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, password, username, privilege
		FROM accounts WHERE user_id = ?
	`, userID).Scan(&acc.UserID, &acc.Password, &acc.Username, &acc.Privilege)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, fmt.Errorf("account %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return Account{}, fmt.Errorf("get account %s: %w", userID, err)
	}
	return acc, nil
}

// DeleteAccount removes an account. Returns ErrNotFound if it does
// not exist.
func (s *Store) DeleteAccount(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account %s: rows affected: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", userID, ErrNotFound)
	}

	slog.Debug("account deleted", "user_id", userID)
	return nil
}

// UpdatePassword replaces an account's password. Returns ErrNotFound
// if the account does not exist.
func (s *Store) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET password = ? WHERE user_id = ?
	`, newPassword, userID)
	if err != nil {
		return fmt.Errorf("update password %s: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password %s: rows affected: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", userID, ErrNotFound)
	}

	slog.Debug("password changed", "user_id", userID)
	return nil
}

// AccountCount returns the number of accounts. Used by tests.
func (s *Store) AccountCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a SQLite unique or primary
// key constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
