package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

// DB keeps the document in process memory. Nothing survives a restart.
type DB struct {
	doc   *records.Database
	seed  core.SeedConfig
	mutex sync.RWMutex
}

var _ records.Store = (*DB)(nil)

func Open(seed core.SeedConfig) *DB {
	return &DB{seed: seed}
}

// Load returns a copy of the stored document, seeding it on first use.
func (db *DB) Load(context.Context) (*records.Database, error) {
	db.mutex.RLock()
	doc := db.doc
	db.mutex.RUnlock()
	if doc != nil {
		return doc.Clone(), nil
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.doc == nil {
		db.doc = records.Seed(db.seed.AdminPassword, db.seed.AdminName)
	}
	return db.doc.Clone(), nil
}

func (db *DB) Save(_ context.Context, doc *records.Database) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.doc = doc.Clone()
	return nil
}

func (db *DB) Close() error { return nil }
