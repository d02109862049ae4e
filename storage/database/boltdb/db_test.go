package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

var seed = core.SeedConfig{AdminPassword: "admin123", AdminName: "Administrator"}

func open(t *testing.T, path string) *DB {
	db, err := Open(path, seed, core.NewNopLogger())
	require.NoError(t, err)
	return db
}

func TestDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	ctx := context.Background()
	db := open(t, path)

	doc, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records.Seed("admin123", "Administrator"), doc)

	doc.Users["t1"] = records.User{Username: "t1", Password: "p", Role: records.RoleTeacher, FullName: "T One"}
	doc.Teachers["t1"] = records.Profile{FullName: "T One"}
	doc.Users["s1"] = records.User{Username: "s1", Password: "p", Role: records.RoleStudent, FullName: "S One"}
	doc.Students["s1"] = records.Profile{FullName: "S One"}
	doc.Results["s1"] = records.Result{StudentID: "s1", Subjects: []records.Subject{{Name: "Math", Mark: 70}}, Total: 70, Average: 70, Grade: "B"}
	require.NoError(t, db.Save(ctx, doc))

	// deletions must not survive a save
	delete(doc.Users, "t1")
	delete(doc.Teachers, "t1")
	require.NoError(t, db.Save(ctx, doc))
	require.NoError(t, db.Close())

	db = open(t, path)
	defer func() { _ = db.Close() }()
	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotContains(t, got.Users, "t1")
}

func TestDB_emptyIsSeededOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	ctx := context.Background()
	db := open(t, path)
	defer func() { _ = db.Close() }()

	doc, err := db.Load(ctx)
	require.NoError(t, err)
	doc.Users["admin"] = records.User{Username: "admin", Password: "changed", Role: records.RoleAdmin, FullName: "Administrator"}
	require.NoError(t, db.Save(ctx, doc))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Users["admin"].Password)
}
