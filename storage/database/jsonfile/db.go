// Package jsondb stores the document as an indented JSON file, the historical data.json layout.
package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

type DB struct {
	path   string
	seed   core.SeedConfig
	logger core.Logger
}

var _ records.Store = (*DB)(nil)

func Open(path string, seed core.SeedConfig, logger core.Logger) (*DB, error) {
	if path == "" {
		return nil, errors.New("jsonfile: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating data directory")
		}
	}
	return &DB{path: path, seed: seed, logger: logger}, nil
}

func (db *DB) Load(ctx context.Context) (*records.Database, error) {
	data, err := os.ReadFile(db.path)
	if os.IsNotExist(err) {
		doc := records.Seed(db.seed.AdminPassword, db.seed.AdminName)
		if err = db.Save(ctx, doc); err != nil {
			return nil, err
		}
		db.logger.Info("database seeded", map[string]interface{}{"path": db.path})
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading "+db.path)
	}

	doc := new(records.Database)
	if err = json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "decoding "+db.path)
	}
	doc.Normalize()
	return doc, nil
}

// Save writes to a temp file next to the target and renames it over, so readers
// never see a partially written document.
func (db *DB) Save(_ context.Context, doc *records.Database) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding database")
	}

	tmp, err := os.CreateTemp(filepath.Dir(db.path), filepath.Base(db.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op once renamed

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing "+tmpName)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "syncing "+tmpName)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing "+tmpName)
	}
	if err = os.Rename(tmpName, db.path); err != nil {
		return errors.Wrap(err, "replacing "+db.path)
	}
	return nil
}

func (db *DB) Close() error { return nil }
