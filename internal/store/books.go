package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Book is one catalog record. Name, Author, and Keywords are empty
// until set by modify. Keywords is the |-joined serialized form.
type Book struct {
	ISBN     string
	Name     string
	Author   string
	Keywords string
	Price    float64
	Quantity int64
}

// KeywordSet returns the distinct keyword tokens of b, or nil when
// unset.
func (b Book) KeywordSet() []string {
	if b.Keywords == "" {
		return nil
	}
	return strings.Split(b.Keywords, "|")
}

// SearchField selects which book field a search filters on.
type SearchField string

const (
	// SearchAll matches every book.
	SearchAll SearchField = ""
	// SearchISBN matches on exact ISBN.
	SearchISBN SearchField = "ISBN"
	// SearchName matches on exact name.
	SearchName SearchField = "name"
	// SearchAuthor matches on exact author.
	SearchAuthor SearchField = "author"
	// SearchKeyword matches by membership in the keyword set.
	SearchKeyword SearchField = "keyword"
)

// InsertBook creates an empty book record for a new ISBN. Returns
// ErrDuplicateKey if the ISBN is taken.
func (s *Store) InsertBook(ctx context.Context, isbn string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO books (isbn) VALUES (?)`, isbn)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert book %s: %w", isbn, ErrDuplicateKey)
		}
		return fmt.Errorf("insert book %s: %w", isbn, err)
	}

	slog.Debug("book created", "isbn", isbn)
	return nil
}

// GetBook looks up a book by ISBN. Returns ErrNotFound if it does not
// exist.
func (s *Store) GetBook(ctx context.Context, isbn string) (Book, error) {
	var b Book
	err := s.db.QueryRowContext(ctx, `
		SELECT isbn, name, author, keywords, price, quantity
		FROM books WHERE isbn = ?
	`, isbn).Scan(&b.ISBN, &b.Name, &b.Author, &b.Keywords, &b.Price, &b.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, fmt.Errorf("book %s: %w", isbn, ErrNotFound)
	}
	if err != nil {
		return Book{}, fmt.Errorf("get book %s: %w", isbn, err)
	}
	return b, nil
}

// HasBook reports whether a book with the given ISBN exists.
func (s *Store) HasBook(ctx context.Context, isbn string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM books WHERE isbn = ?`, isbn).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has book %s: %w", isbn, err)
	}
	return true, nil
}

// SearchBooks returns books matching the filter, in ascending ISBN
// byte order. SearchAll returns the whole catalog; SearchKeyword
// matches when value is a member of the book's keyword set; other
// fields match exactly. An empty result is not an error.
func (s *Store) SearchBooks(ctx context.Context, field SearchField, value string) ([]Book, error) {
	query := `
		SELECT isbn, name, author, keywords, price, quantity
		FROM books`
	var args []any

	switch field {
	case SearchAll:
	case SearchISBN:
		query += ` WHERE isbn = ?`
		args = append(args, value)
	case SearchName:
		query += ` WHERE name = ?`
		args = append(args, value)
	case SearchAuthor:
		query += ` WHERE author = ?`
		args = append(args, value)
	case SearchKeyword:
		// Delimit both sides so instr matches whole tokens only.
		query += ` WHERE instr('|' || keywords || '|', '|' || ? || '|') > 0`
		args = append(args, value)
	default:
		return nil, fmt.Errorf("search books: unknown field %q", field)
	}

	query += ` ORDER BY isbn ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Name, &b.Author, &b.Keywords, &b.Price, &b.Quantity); err != nil {
			return nil, fmt.Errorf("search books: scan: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// UpdateBook replaces the record currently keyed by oldISBN with b.
// When b.ISBN differs from oldISBN this is a rename; a collision with
// an existing ISBN returns ErrDuplicateKey and changes nothing.
// Quantity is not touched - stock moves only through Sell and Restock.
func (s *Store) UpdateBook(ctx context.Context, oldISBN string, b Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET isbn = ?, name = ?, author = ?, keywords = ?, price = ?
		WHERE isbn = ?
	`, b.ISBN, b.Name, b.Author, b.Keywords, b.Price, oldISBN)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update book %s: rename to %s: %w", oldISBN, b.ISBN, ErrDuplicateKey)
		}
		return fmt.Errorf("update book %s: %w", oldISBN, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %s: rows affected: %w", oldISBN, err)
	}
	if n == 0 {
		return fmt.Errorf("book %s: %w", oldISBN, ErrNotFound)
	}

	slog.Debug("book updated", "isbn", oldISBN, "new_isbn", b.ISBN)
	return nil
}

// Sell decrements stock by quantity and records price*quantity as
// income, atomically. Returns the charged total. Fails with
// ErrNotFound for an unknown ISBN and ErrInsufficientStock when
// on-hand stock is below quantity; on failure nothing is written.
func (s *Store) Sell(ctx context.Context, isbn string, quantity int64) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sell %s: begin tx: %w", isbn, err)
	}
	defer tx.Rollback() // No-op if committed

	var price float64
	var stock int64
	err = tx.QueryRowContext(ctx, `
		SELECT price, quantity FROM books WHERE isbn = ?
	`, isbn).Scan(&price, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("book %s: %w", isbn, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("sell %s: %w", isbn, err)
	}

	if stock < quantity {
		return 0, fmt.Errorf("book %s: have %d, want %d: %w", isbn, stock, quantity, ErrInsufficientStock)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE books SET quantity = quantity - ? WHERE isbn = ?
	`, quantity, isbn); err != nil {
		return 0, fmt.Errorf("sell %s: update stock: %w", isbn, err)
	}

	total := price * float64(quantity)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (amount, income) VALUES (?, 1)
	`, total); err != nil {
		return 0, fmt.Errorf("sell %s: record income: %w", isbn, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sell %s: commit: %w", isbn, err)
	}

	slog.Debug("sale recorded", "isbn", isbn, "quantity", quantity, "total", total)
	return total, nil
}

// Restock increases stock by quantity and records totalCost as an
// expenditure, atomically. No unit-price relationship between
// totalCost and the catalog price is enforced. Returns ErrNotFound for
// an unknown ISBN; on failure nothing is written.
func (s *Store) Restock(ctx context.Context, isbn string, quantity int64, totalCost float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("restock %s: begin tx: %w", isbn, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE books SET quantity = quantity + ? WHERE isbn = ?
	`, quantity, isbn)
	if err != nil {
		return fmt.Errorf("restock %s: update stock: %w", isbn, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("restock %s: rows affected: %w", isbn, err)
	}
	if n == 0 {
		return fmt.Errorf("book %s: %w", isbn, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (amount, income) VALUES (?, 0)
	`, totalCost); err != nil {
		return fmt.Errorf("restock %s: record expenditure: %w", isbn, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("restock %s: commit: %w", isbn, err)
	}

	slog.Debug("restock recorded", "isbn", isbn, "quantity", quantity, "cost", totalCost)
	return nil
}

// ErrInsufficientStock is returned by Sell when on-hand stock is
// below the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")
