// Package access decides whether a caller may run a role-restricted operation.
package access

import (
	"context"
	"errors"

	"github.com/trezcool/marksheet/core/records"
)

var (
	ErrNotLoggedIn = errors.New("please log in")
	ErrWrongRole   = errors.New("access denied")
)

// Outcome of an authorization check.
type Outcome int

const (
	Allow Outcome = iota
	DenyNotLoggedIn
	DenyWrongRole
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case DenyNotLoggedIn:
		return "deny_not_logged_in"
	case DenyWrongRole:
		return "deny_wrong_role"
	}
	return "unknown"
}

// Decision is the result of Authorize. User is only set when Outcome is Allow.
type Decision struct {
	Outcome Outcome
	User    records.User
}

func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Err returns nil when allowed, or the sentinel matching the denial.
func (d Decision) Err() error {
	switch d.Outcome {
	case Allow:
		return nil
	case DenyNotLoggedIn:
		return ErrNotLoggedIn
	default:
		return ErrWrongRole
	}
}

// Authorize checks caller against the required role. An empty role only requires a caller.
func Authorize(caller *records.User, required records.Role) Decision {
	if caller == nil {
		return Decision{Outcome: DenyNotLoggedIn}
	}
	if required != "" && caller.Role != required {
		return Decision{Outcome: DenyWrongRole}
	}
	return Decision{Outcome: Allow, User: *caller}
}

// Gate resolves caller identities against the record store before authorizing them.
type Gate struct {
	guard *records.Guard
}

func NewGate(guard *records.Guard) *Gate {
	return &Gate{guard: guard}
}

// Authorize resolves identity (a username, possibly empty) and checks it against role.
// Unknown usernames are treated as not logged in.
// Store failures are returned as errors, never as a Decision.
func (g *Gate) Authorize(ctx context.Context, identity string, role records.Role) (Decision, error) {
	caller, err := g.Resolve(ctx, identity)
	if err != nil {
		return Decision{}, err
	}
	return Authorize(caller, role), nil
}

// Resolve returns the user behind identity, or nil when there is none.
func (g *Gate) Resolve(ctx context.Context, identity string) (*records.User, error) {
	if identity == "" {
		return nil, nil
	}
	var caller *records.User
	err := g.guard.View(ctx, func(db *records.Database) error {
		if usr, ok := db.GetUser(identity); ok {
			caller = &usr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return caller, nil
}
