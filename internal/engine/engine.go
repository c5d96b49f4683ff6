// Package engine implements the bookstore command dispatcher.
//
// The engine receives one command line at a time, tokenizes it, routes
// it to a handler, and sequences validation, authorization, mutation,
// and output. The ordering contract is the core reliability guarantee:
// every handler completes all argument-syntax validation and all
// authorization checks before applying any mutation, so a rejected
// command leaves the stores, the session stack, and the selected-book
// bindings completely unchanged.
//
// Execution is single-threaded and synchronous: one command is fully
// validated, authorized, applied, and persisted before the next is
// read. Every rejection is reported to the transport as the single
// line "Invalid"; the structured cause is logged instead.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"bookstore/internal/session"
	"bookstore/internal/store"
)

// ErrQuit is returned by Execute for quit/exit. The transport loop
// terminates immediately without printing anything.
var ErrQuit = errors.New("quit")

// Engine dispatches command lines against the record stores and the
// session stack.
type Engine struct {
	store    *store.Store
	sessions *session.Stack
	cmds     map[string]command
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	tokenGen SessionTokenGenerator
	logger   *slog.Logger
}

// WithTokenGenerator overrides the session token generator.
// Tests use FixedGenerator for deterministic logs.
func WithTokenGenerator(g SessionTokenGenerator) Option {
	return func(o *options) { o.tokenGen = g }
}

// WithLogger overrides the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an Engine over an opened store. A fresh session token is
// generated and attached to every log record of this engine.
func New(st *store.Store, opts ...Option) *Engine {
	o := options{
		tokenGen: UUIDv7Generator{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		store:    st,
		sessions: session.NewStack(),
		log:      o.logger.With("session", o.tokenGen.Generate()),
	}
	e.cmds = e.commands()
	return e
}

// Sessions returns the engine's session stack. Used by tests to
// inspect stack depth and bindings.
func (e *Engine) Sessions() *session.Stack {
	return e.sessions
}

// command binds a handler to its minimum privilege threshold.
// The dispatcher checks the threshold against the privilege of the
// top-of-stack identity before invoking the handler.
type command struct {
	minPrivilege int
	handler      func(ctx context.Context, args []string) (string, error)
}

// commands returns the dispatch table. "show finance" is routed as its
// own command with its own threshold before plain "show".
func (e *Engine) commands() map[string]command {
	return map[string]command{
		"register":     {session.PrivilegeNone, e.cmdRegister},
		"su":           {session.PrivilegeNone, e.cmdSu},
		"logout":       {session.PrivilegeNone, e.cmdLogout},
		"passwd":       {session.PrivilegeCustomer, e.cmdPasswd},
		"useradd":      {session.PrivilegeStaff, e.cmdUseradd},
		"delete":       {session.PrivilegeOwner, e.cmdDelete},
		"show":         {session.PrivilegeCustomer, e.cmdShow},
		"show finance": {session.PrivilegeOwner, e.cmdShowFinance},
		"buy":          {session.PrivilegeCustomer, e.cmdBuy},
		"select":       {session.PrivilegeStaff, e.cmdSelect},
		"modify":       {session.PrivilegeStaff, e.cmdModify},
		"import":       {session.PrivilegeStaff, e.cmdImport},
		"log":          {session.PrivilegeOwner, e.cmdLog},
		"report":       {session.PrivilegeOwner, e.cmdReport},
	}
}

// Execute processes one command line and returns its output text.
//
// The returned string is written to the transport verbatim: it is
// empty for commands with no natural result, a single newline for a
// blank-line result, or one newline-terminated line per result row.
// A non-nil error means the command was rejected; the caller prints
// the reserved "Invalid" line. ErrQuit terminates the transport loop.
// A blank input line produces no output and no error.
func (e *Engine) Execute(ctx context.Context, line string) (string, error) {
	tokens, ok := tokenize(line)
	if !ok {
		err := syntaxErr("", "unterminated quote")
		e.logRejection("", err)
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	name := tokens[0]
	args := tokens[1:]

	if name == "quit" || name == "exit" {
		if len(args) != 0 {
			err := syntaxErr(name, "unexpected arguments")
			e.logRejection(name, err)
			return "", err
		}
		e.log.Info("terminating", "command", name)
		return "", ErrQuit
	}

	if name == "show" && len(args) > 0 && args[0] == "finance" {
		name = "show finance"
		args = args[1:]
	}

	cmd, ok := e.cmds[name]
	if !ok {
		err := syntaxErr(name, "unknown command")
		e.logRejection(name, err)
		return "", err
	}

	priv, err := e.currentPrivilege(ctx)
	if err != nil {
		return "", err
	}
	if priv < cmd.minPrivilege {
		err := authErr(name, "privilege %d below threshold %d", priv, cmd.minPrivilege)
		e.logRejection(name, err)
		return "", err
	}

	out, err := cmd.handler(ctx, args)
	if err != nil {
		e.logRejection(name, err)
		return "", err
	}
	return out, nil
}

// currentPrivilege resolves the privilege of the acting identity.
// An empty stack has privilege 0, below every real account.
func (e *Engine) currentPrivilege(ctx context.Context) (int, error) {
	userID := e.sessions.Top()
	if userID == "" {
		return session.PrivilegeNone, nil
	}
	acc, err := e.store.GetAccount(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// Accounts on the stack cannot be deleted, so this only
		// happens if the database is modified out of band.
		return session.PrivilegeNone, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Privilege, nil
}

func (e *Engine) logRejection(command string, err error) {
	var ce *CommandError
	if errors.As(err, &ce) {
		e.log.Debug("command rejected", "command", command, "code", string(ce.Code), "reason", ce.Message)
		return
	}
	e.log.Error("command failed", "command", command, "error", err)
}
