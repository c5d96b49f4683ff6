package engine

import (
	"context"
	"errors"

	"bookstore/internal/session"
	"bookstore/internal/store"
	"bookstore/internal/validate"
)

// cmdSu pushes a login onto the session stack.
//
//	su userID [password]
//
// With a password the password must match. Without one the caller's
// current privilege must be strictly greater than the target's - a
// privileged switch-down needs no credentials. The target must exist
// either way.
func (e *Engine) cmdSu(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", syntaxErr("su", "expected userID [password], got %d args", len(args))
	}
	userID := args[0]
	password := ""
	if len(args) == 2 {
		password = args[1]
	}

	if !validate.UserID(userID) {
		return "", syntaxErr("su", "invalid userID")
	}
	if password != "" && !validate.Password(password) {
		return "", syntaxErr("su", "invalid password")
	}

	acc, err := e.store.GetAccount(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", authErr("su", "no such account %s", userID)
	}
	if err != nil {
		return "", err
	}

	if password == "" {
		priv, err := e.currentPrivilege(ctx)
		if err != nil {
			return "", err
		}
		if priv <= acc.Privilege {
			return "", authErr("su", "privilege %d does not dominate target %d", priv, acc.Privilege)
		}
	} else if password != acc.Password {
		return "", authErr("su", "password mismatch for %s", userID)
	}

	e.sessions.Push(userID)
	e.log.Info("login", "user_id", userID, "privilege", acc.Privilege, "depth", e.sessions.Depth())
	return "", nil
}

// cmdLogout pops the top of the session stack. Popping an empty stack
// is invalid and mutates nothing.
func (e *Engine) cmdLogout(ctx context.Context, args []string) (string, error) {
	if len(args) != 0 {
		return "", syntaxErr("logout", "unexpected arguments")
	}

	userID := e.sessions.Top()
	if !e.sessions.Pop() {
		return "", authErr("logout", "no active session")
	}

	e.log.Info("logout", "user_id", userID, "depth", e.sessions.Depth())
	return "", nil
}

// cmdRegister creates a self-service account with privilege 1.
//
//	register userID password username
func (e *Engine) cmdRegister(ctx context.Context, args []string) (string, error) {
	if len(args) != 3 {
		return "", syntaxErr("register", "expected userID password username, got %d args", len(args))
	}
	userID, password, username := args[0], args[1], args[2]

	if !validate.UserID(userID) || !validate.Password(password) || !validate.Username(username) {
		return "", syntaxErr("register", "invalid field")
	}

	err := e.store.InsertAccount(ctx, store.Account{
		UserID:    userID,
		Password:  password,
		Username:  username,
		Privilege: session.PrivilegeCustomer,
	})
	if errors.Is(err, store.ErrDuplicateKey) {
		return "", domainErr("register", "userID %s already taken", userID)
	}
	if err != nil {
		return "", err
	}
	return "", nil
}

// cmdPasswd changes an account's password.
//
//	passwd userID [oldPassword] newPassword
//
// With oldPassword it must match. Without it the caller must hold
// privilege 7. The target must exist either way.
func (e *Engine) cmdPasswd(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", syntaxErr("passwd", "expected userID [oldPassword] newPassword, got %d args", len(args))
	}
	userID := args[0]
	oldPassword := ""
	newPassword := args[1]
	if len(args) == 3 {
		oldPassword = args[1]
		newPassword = args[2]
	}

	if !validate.UserID(userID) || !validate.Password(newPassword) {
		return "", syntaxErr("passwd", "invalid field")
	}
	if oldPassword != "" && !validate.Password(oldPassword) {
		return "", syntaxErr("passwd", "invalid old password")
	}

	acc, err := e.store.GetAccount(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", authErr("passwd", "no such account %s", userID)
	}
	if err != nil {
		return "", err
	}

	if oldPassword == "" {
		priv, err := e.currentPrivilege(ctx)
		if err != nil {
			return "", err
		}
		if priv != session.PrivilegeOwner {
			return "", authErr("passwd", "omitting old password requires privilege 7")
		}
	} else if oldPassword != acc.Password {
		return "", authErr("passwd", "old password mismatch for %s", userID)
	}

	if err := e.store.UpdatePassword(ctx, userID, newPassword); err != nil {
		return "", err
	}
	return "", nil
}

// cmdUseradd creates an account with a chosen privilege.
//
//	useradd userID password privilege username
//
// The privilege must be one of {1, 3, 7} and strictly less than the
// caller's own.
func (e *Engine) cmdUseradd(ctx context.Context, args []string) (string, error) {
	if len(args) != 4 {
		return "", syntaxErr("useradd", "expected userID password privilege username, got %d args", len(args))
	}
	userID, password, privStr, username := args[0], args[1], args[2], args[3]

	if !validate.UserID(userID) || !validate.Password(password) || !validate.Username(username) {
		return "", syntaxErr("useradd", "invalid field")
	}
	if len(privStr) != 1 || privStr[0] < '0' || privStr[0] > '9' {
		return "", syntaxErr("useradd", "invalid privilege %q", privStr)
	}

	privilege := int(privStr[0] - '0')
	if !session.ValidPrivilege(privilege) {
		return "", syntaxErr("useradd", "privilege %d not in {1,3,7}", privilege)
	}

	callerPriv, err := e.currentPrivilege(ctx)
	if err != nil {
		return "", err
	}
	if privilege >= callerPriv {
		return "", authErr("useradd", "privilege %d not below caller's %d", privilege, callerPriv)
	}

	err = e.store.InsertAccount(ctx, store.Account{
		UserID:    userID,
		Password:  password,
		Username:  username,
		Privilege: privilege,
	})
	if errors.Is(err, store.ErrDuplicateKey) {
		return "", domainErr("useradd", "userID %s already taken", userID)
	}
	if err != nil {
		return "", err
	}
	return "", nil
}

// cmdDelete removes an account.
//
//	delete userID
//
// Rejected while the target is logged in anywhere on the session
// stack. root carries no special case: it is protected only by the
// logged-in rule while in use.
func (e *Engine) cmdDelete(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxErr("delete", "expected userID, got %d args", len(args))
	}
	userID := args[0]

	if !validate.UserID(userID) {
		return "", syntaxErr("delete", "invalid userID")
	}

	if _, err := e.store.GetAccount(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", authErr("delete", "no such account %s", userID)
		}
		return "", err
	}

	if e.sessions.Contains(userID) {
		return "", authErr("delete", "account %s is logged in", userID)
	}

	if err := e.store.DeleteAccount(ctx, userID); err != nil {
		return "", err
	}
	return "", nil
}
