// Package session tracks nested operator logins and per-operator book
// selections.
//
// The stack is a true stack: su pushes, logout pops, and the same
// identity may appear more than once. The top entry determines the
// acting identity and privilege for the next command. Session state
// is in-memory only and resets on process start.
package session

// Privilege levels. Higher levels can manage lower ones. PrivilegeNone
// is the privilege of an empty stack, below every real account.
const (
	PrivilegeNone     = 0
	PrivilegeCustomer = 1
	PrivilegeStaff    = 3
	PrivilegeOwner    = 7
)

// ValidPrivilege reports whether p is an assignable account privilege.
func ValidPrivilege(p int) bool {
	return p == PrivilegeCustomer || p == PrivilegeStaff || p == PrivilegeOwner
}

// Stack is the ordered record of active logins plus the selected-book
// binding for each logged-in identity.
//
// INVARIANT: a selected-book binding exists only while its identity
// has at least one entry on the stack. Pop clears the binding when the
// last entry for that identity is removed.
type Stack struct {
	entries  []string
	selected map[string]string // identity -> selected ISBN
}

// NewStack returns an empty session stack.
func NewStack() *Stack {
	return &Stack{selected: make(map[string]string)}
}

// Push appends an identity to the top of the stack.
func (s *Stack) Push(userID string) {
	s.entries = append(s.entries, userID)
}

// Pop removes the top entry. If the popped identity has no remaining
// entries, its selected-book binding is cleared. Returns false on an
// empty stack, leaving all state unchanged.
func (s *Stack) Pop() bool {
	if len(s.entries) == 0 {
		return false
	}
	userID := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	if !s.Contains(userID) {
		delete(s.selected, userID)
	}
	return true
}

// Top returns the acting identity, or "" if nobody is logged in.
func (s *Stack) Top() string {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1]
}

// Depth returns the number of stack entries, counting duplicates.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Contains reports whether userID appears anywhere on the stack.
// Used by account deletion: a logged-in account cannot be deleted.
func (s *Stack) Contains(userID string) bool {
	for _, e := range s.entries {
		if e == userID {
			return true
		}
	}
	return false
}

// Select binds an ISBN as the selected book of userID.
func (s *Stack) Select(userID, isbn string) {
	s.selected[userID] = isbn
}

// Selected returns the selected ISBN of userID, if any. A binding can
// dangle after another operator renames the book; consumers must
// re-check that the ISBN still exists.
func (s *Stack) Selected(userID string) (string, bool) {
	isbn, ok := s.selected[userID]
	return isbn, ok
}
