package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookstore/internal/store"
	"bookstore/internal/validate"
)

// cmdShow queries the catalog.
//
//	show [-ISBN=...|-name="..."|-author="..."|-keyword="..."]
//
// At most one filter; the keyword filter takes a single token and
// matches by membership in the book's keyword set. Results are sorted
// by ascending ISBN; an empty result prints a single blank line.
func (e *Engine) cmdShow(ctx context.Context, args []string) (string, error) {
	field := store.SearchAll
	value := ""

	switch len(args) {
	case 0:
	case 1:
		key, raw, ok := splitFlag(args[0])
		if !ok {
			return "", syntaxErr("show", "malformed filter %q", args[0])
		}
		switch key {
		case "ISBN":
			if !validate.ISBN(raw) {
				return "", syntaxErr("show", "invalid ISBN filter")
			}
			field, value = store.SearchISBN, raw
		case "name", "author":
			v, ok := unquote(raw)
			if !ok || !validate.BookName(v) {
				return "", syntaxErr("show", "invalid %s filter", key)
			}
			field, value = store.SearchName, v
			if key == "author" {
				field = store.SearchAuthor
			}
		case "keyword":
			v, ok := unquote(raw)
			if !ok || !validate.BookName(v) || strings.ContainsRune(v, '|') {
				return "", syntaxErr("show", "invalid keyword filter")
			}
			field, value = store.SearchKeyword, v
		default:
			return "", syntaxErr("show", "unknown filter -%s", key)
		}
	default:
		return "", syntaxErr("show", "at most one filter, got %d args", len(args))
	}

	books, err := e.store.SearchBooks(ctx, field, value)
	if err != nil {
		return "", err
	}

	if len(books) == 0 {
		return "\n", nil
	}
	var b strings.Builder
	for _, book := range books {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%.2f\t%d\n",
			book.ISBN, book.Name, book.Author, book.Keywords, book.Price, book.Quantity)
	}
	return b.String(), nil
}

// cmdBuy sells stock to the acting operator.
//
//	buy ISBN quantity
//
// Requires quantity > 0, the book to exist, and on-hand stock to
// cover the quantity. Decrements stock, records price*quantity as
// income, and prints the charged total to two decimal places.
func (e *Engine) cmdBuy(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", syntaxErr("buy", "expected ISBN quantity, got %d args", len(args))
	}
	isbn, qtyStr := args[0], args[1]

	if !validate.ISBN(isbn) || !validate.Quantity(qtyStr) {
		return "", syntaxErr("buy", "invalid field")
	}
	quantity, err := strconv.ParseInt(qtyStr, 10, 64)
	if err != nil {
		return "", syntaxErr("buy", "invalid quantity %q", qtyStr)
	}
	if quantity <= 0 {
		return "", domainErr("buy", "quantity must be positive")
	}

	total, err := e.store.Sell(ctx, isbn, quantity)
	if errors.Is(err, store.ErrNotFound) {
		return "", domainErr("buy", "no such book %s", isbn)
	}
	if errors.Is(err, store.ErrInsufficientStock) {
		return "", domainErr("buy", "insufficient stock of %s", isbn)
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%.2f\n", total), nil
}

// cmdSelect binds a book to the acting operator for later modify and
// import commands, creating an empty record when the ISBN is new.
//
//	select ISBN
func (e *Engine) cmdSelect(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxErr("select", "expected ISBN, got %d args", len(args))
	}
	isbn := args[0]

	if !validate.ISBN(isbn) {
		return "", syntaxErr("select", "invalid ISBN")
	}

	exists, err := e.store.HasBook(ctx, isbn)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := e.store.InsertBook(ctx, isbn); err != nil {
			return "", err
		}
	}

	e.sessions.Select(e.sessions.Top(), isbn)
	return "", nil
}

// bookEdit accumulates the validated field replacements of one modify
// invocation. nil pointers mean "leave unchanged".
type bookEdit struct {
	isbn     *string
	name     *string
	author   *string
	keywords *string
	price    *float64
}

// cmdModify edits the acting operator's selected book.
//
//	modify [-ISBN=...] [-name="..."] [-author="..."] [-keyword="..."] [-price=...]
//
// Any nonempty subset of flags, no duplicates. A new ISBN must differ
// from the current one and must not collide with another book. All
// flags are validated before anything is written; on an ISBN change
// the caller's selection follows the book.
func (e *Engine) cmdModify(ctx context.Context, args []string) (string, error) {
	current, ok := e.sessions.Selected(e.sessions.Top())
	if !ok {
		return "", domainErr("modify", "no book selected")
	}
	if len(args) == 0 {
		return "", syntaxErr("modify", "expected at least one flag")
	}

	// The selection can dangle if another operator renamed the book.
	book, err := e.store.GetBook(ctx, current)
	if errors.Is(err, store.ErrNotFound) {
		return "", domainErr("modify", "selected book %s no longer exists", current)
	}
	if err != nil {
		return "", err
	}

	var edit bookEdit
	seen := make(map[string]bool)
	for _, arg := range args {
		key, raw, ok := splitFlag(arg)
		if !ok {
			return "", syntaxErr("modify", "malformed flag %q", arg)
		}
		if seen[key] {
			return "", syntaxErr("modify", "duplicate flag -%s", key)
		}
		seen[key] = true

		switch key {
		case "ISBN":
			if !validate.ISBN(raw) {
				return "", syntaxErr("modify", "invalid ISBN")
			}
			if raw == current {
				return "", authErr("modify", "new ISBN equals current")
			}
			exists, err := e.store.HasBook(ctx, raw)
			if err != nil {
				return "", err
			}
			if exists {
				return "", authErr("modify", "ISBN %s already exists", raw)
			}
			edit.isbn = &raw
		case "name", "author":
			v, ok := unquote(raw)
			if !ok || !validate.BookName(v) {
				return "", syntaxErr("modify", "invalid %s", key)
			}
			if key == "name" {
				edit.name = &v
			} else {
				edit.author = &v
			}
		case "keyword":
			v, ok := unquote(raw)
			if !ok || !validate.Keywords(v) {
				return "", syntaxErr("modify", "invalid keyword set")
			}
			edit.keywords = &v
		case "price":
			if !validate.Price(raw) {
				return "", syntaxErr("modify", "invalid price")
			}
			p, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return "", syntaxErr("modify", "invalid price %q", raw)
			}
			edit.price = &p
		default:
			return "", syntaxErr("modify", "unknown flag -%s", key)
		}
	}

	if edit.isbn != nil {
		book.ISBN = *edit.isbn
	}
	if edit.name != nil {
		book.Name = *edit.name
	}
	if edit.author != nil {
		book.Author = *edit.author
	}
	if edit.keywords != nil {
		book.Keywords = *edit.keywords
	}
	if edit.price != nil {
		book.Price = *edit.price
	}

	if err := e.store.UpdateBook(ctx, current, book); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return "", authErr("modify", "ISBN %s already exists", book.ISBN)
		}
		return "", err
	}

	if book.ISBN != current {
		e.sessions.Select(e.sessions.Top(), book.ISBN)
	}
	return "", nil
}

// cmdImport restocks the acting operator's selected book.
//
//	import quantity totalCost
//
// Both must be positive; totalCost is recorded as an expenditure with
// no enforced relation to the catalog price.
func (e *Engine) cmdImport(ctx context.Context, args []string) (string, error) {
	isbn, ok := e.sessions.Selected(e.sessions.Top())
	if !ok {
		return "", domainErr("import", "no book selected")
	}
	if len(args) != 2 {
		return "", syntaxErr("import", "expected quantity totalCost, got %d args", len(args))
	}
	qtyStr, costStr := args[0], args[1]

	if !validate.Quantity(qtyStr) || !validate.Price(costStr) {
		return "", syntaxErr("import", "invalid field")
	}
	quantity, err := strconv.ParseInt(qtyStr, 10, 64)
	if err != nil {
		return "", syntaxErr("import", "invalid quantity %q", qtyStr)
	}
	totalCost, err := strconv.ParseFloat(costStr, 64)
	if err != nil {
		return "", syntaxErr("import", "invalid totalCost %q", costStr)
	}
	if quantity <= 0 || totalCost <= 0 {
		return "", domainErr("import", "quantity and totalCost must be positive")
	}

	if err := e.store.Restock(ctx, isbn, quantity, totalCost); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainErr("import", "selected book %s no longer exists", isbn)
		}
		return "", err
	}
	return "", nil
}
