package testutil

import (
	"context"
	"testing"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
	inmemdb "github.com/trezcool/marksheet/storage/database/inmem"
)

var Seed = core.SeedConfig{AdminPassword: "admin123", AdminName: "Administrator"}

// NewGuard returns a guard over a fresh, seeded in-memory store.
func NewGuard(t *testing.T) *records.Guard {
	t.Helper()
	guard := records.NewGuard(inmemdb.Open(Seed), core.NewNopLogger())
	if err := guard.Init(context.Background()); err != nil {
		t.Fatalf("NewGuard() failed: %v", err)
	}
	return guard
}

// CreateUser inserts a user and its shadow record directly, bypassing validation.
func CreateUser(t *testing.T, guard *records.Guard, uname, pwd string, role records.Role, fullName ...string) records.User {
	t.Helper()
	usr := records.User{Username: uname, Password: pwd, Role: role, FullName: uname}
	if len(fullName) > 0 {
		usr.FullName = fullName[0]
	}
	err := guard.Update(context.Background(), func(db *records.Database) error {
		db.Users[uname] = usr
		switch role {
		case records.RoleTeacher:
			db.Teachers[uname] = records.Profile{FullName: usr.FullName}
		case records.RoleStudent:
			db.Students[uname] = records.Profile{FullName: usr.FullName}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateResult stores res as-is.
func CreateResult(t *testing.T, guard *records.Guard, res records.Result) {
	t.Helper()
	err := guard.Update(context.Background(), func(db *records.Database) error {
		db.Results[res.StudentID] = res
		return nil
	})
	if err != nil {
		t.Fatalf("CreateResult() failed: %v", err)
	}
}

// Snapshot returns a copy of the current document.
func Snapshot(t *testing.T, guard *records.Guard) *records.Database {
	t.Helper()
	var snap *records.Database
	err := guard.View(context.Background(), func(db *records.Database) error {
		snap = db
		return nil
	})
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	return snap
}
