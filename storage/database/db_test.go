package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

func testConfig(engine, path string) *core.Config {
	return &core.Config{
		Database: core.DatabaseConfig{Engine: engine, Path: path},
		Seed:     core.SeedConfig{AdminPassword: "admin123", AdminName: "Administrator"},
	}
}

func TestOpenGuard(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		engine string
		path   string
	}{
		{EngineMemory, ""},
		{EngineJSONFile, filepath.Join(dir, "data.json")},
		{EngineBolt, filepath.Join(dir, "data.db")},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			guard, err := OpenGuard(context.Background(), testConfig(tt.engine, tt.path), nil)
			require.NoError(t, err)
			defer func() { _ = guard.Close() }()

			err = guard.View(context.Background(), func(db *records.Database) error {
				admin, ok := db.GetUser(records.AdminUsername)
				assert.True(t, ok)
				assert.Equal(t, "admin123", admin.Password)
				return nil
			})
			assert.NoError(t, err)
		})
	}
}

func TestOpen_errors(t *testing.T) {
	_, err := Open(context.Background(), testConfig("sqlite", ""), nil)
	assert.Equal(t, ErrUnknownEngine, errors.Cause(err))

	_, err = Open(context.Background(), testConfig(EnginePostgres, ""), nil)
	assert.Error(t, err)

	_, err = Open(context.Background(), testConfig(EngineMongoDB, ""), nil)
	assert.Error(t, err)
}
