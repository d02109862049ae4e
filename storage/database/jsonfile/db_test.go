package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

var seed = core.SeedConfig{AdminPassword: "admin123", AdminName: "Administrator"}

func TestDB_Load_seeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	db, err := Open(path, seed, core.NewNopLogger())
	require.NoError(t, err)

	doc, err := db.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records.Seed("admin123", "Administrator"), doc)

	_, err = os.Stat(path)
	assert.NoError(t, err, "seeded document is persisted")
}

func TestDB_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	db, err := Open(path, seed, core.NewNopLogger())
	require.NoError(t, err)
	ctx := context.Background()

	doc := records.Seed("admin123", "Administrator")
	doc.Users["s1"] = records.User{Username: "s1", Password: "p", Role: records.RoleStudent, FullName: "S One"}
	doc.Students["s1"] = records.Profile{FullName: "S One"}
	doc.Results["s1"] = records.Result{
		StudentID:  "s1",
		Subjects:   []records.Subject{{Name: "Math", Mark: 95}},
		Total:      95,
		Average:    95,
		Grade:      "A+",
		Attendance: 90,
	}
	require.NoError(t, db.Save(ctx, doc))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	assert.Empty(t, matches, "no temp file left behind")
}

func TestDB_Load_legacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	legacy := `{
  "users": {
    "admin": {"password": "admin123", "role": "admin", "full_name": "Administrator"},
    "t1": {"password": "p", "role": "teacher", "full_name": "T One"}
  },
  "teachers": {"t1": {"full_name": "T One"}},
  "students": {}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	db, err := Open(path, seed, core.NewNopLogger())
	require.NoError(t, err)
	doc, err := db.Load(context.Background())
	require.NoError(t, err)

	usr, ok := doc.GetUser("t1")
	assert.True(t, ok)
	assert.Equal(t, records.User{Username: "t1", Password: "p", Role: records.RoleTeacher, FullName: "T One"}, usr)
	assert.NotNil(t, doc.Results, "missing collections are created")
}

func TestDB_Load_corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	db, err := Open(path, seed, core.NewNopLogger())
	require.NoError(t, err)
	_, err = db.Load(context.Background())
	assert.Error(t, err)
}
