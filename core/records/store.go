package records

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core"
)

type (
	// Store persists the whole Database as one document.
	// Load seeds and persists a fresh Database when none exists yet.
	// Save fully overwrites the persisted document.
	Store interface {
		Load(ctx context.Context) (*Database, error)
		Save(ctx context.Context, db *Database) error
		Close() error
	}

	// Guard is the single-writer boundary in front of a Store.
	// Every read-modify-write cycle runs under one mutex, so concurrent
	// operations within the process can never overwrite each other.
	Guard struct {
		mu     sync.Mutex
		store  Store
		logger core.Logger
		closed bool
	}
)

// errClosedMsg is the message of the shutdown error returned once the Guard is closed.
const errClosedMsg = "database is closed"

func NewGuard(store Store, logger core.Logger) *Guard {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &Guard{store: store, logger: logger}
}

// Init loads the Database once, seeding it if absent.
func (g *Guard) Init(ctx context.Context) error {
	return g.View(ctx, func(*Database) error { return nil })
}

// View runs fn against a snapshot of the Database. Changes made by fn are discarded.
func (g *Guard) View(ctx context.Context, fn func(db *Database) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return core.NewShutdownError(errClosedMsg)
	}

	db, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Error("loading database", err)
		return errors.Wrap(err, "loading database")
	}
	return fn(db.Clone())
}

// Update runs fn against a copy of the Database and saves the copy if fn succeeds.
// Nothing is applied when fn or Save fails.
func (g *Guard) Update(ctx context.Context, fn func(db *Database) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return core.NewShutdownError(errClosedMsg)
	}

	db, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Error("loading database", err)
		return errors.Wrap(err, "loading database")
	}
	working := db.Clone()
	if err = fn(working); err != nil {
		return err
	}
	if err = g.store.Save(ctx, working); err != nil {
		g.logger.Error("saving database", err)
		return errors.Wrap(err, "saving database")
	}
	return nil
}

// Close closes the Store. Any later View or Update fails with a core shutdown error.
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	return g.store.Close()
}
