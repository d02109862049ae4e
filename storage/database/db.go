// Package database opens the records.Store selected by configuration.
package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/storage/database/boltdb"
	inmemdb "github.com/trezcool/marksheet/storage/database/inmem"
	jsondb "github.com/trezcool/marksheet/storage/database/jsonfile"
	"github.com/trezcool/marksheet/storage/database/mongodb"
	"github.com/trezcool/marksheet/storage/database/postgres"
)

// Engines
const (
	EngineJSONFile = "jsonfile"
	EngineBolt     = "bolt"
	EnginePostgres = "postgres"
	EngineMongoDB  = "mongodb"
	EngineMemory   = "memory"
)

var ErrUnknownEngine = errors.New("unknown database engine")

func Open(ctx context.Context, conf *core.Config, logger core.Logger) (records.Store, error) {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	dbConf := conf.Database

	switch dbConf.Engine {
	case EngineJSONFile, "":
		return jsondb.Open(dbConf.Path, conf.Seed, logger)
	case EngineBolt:
		return boltdb.Open(dbConf.Path, conf.Seed, logger)
	case EnginePostgres:
		return postgres.Open(ctx, dbConf.DSN, conf.Seed, logger)
	case EngineMongoDB:
		return mongodb.Open(ctx, dbConf.DSN, dbConf.Name, conf.Seed, logger)
	case EngineMemory:
		return inmemdb.Open(conf.Seed), nil
	}
	return nil, errors.Wrap(ErrUnknownEngine, dbConf.Engine)
}

// OpenGuard opens the configured store and loads it once so a fresh store gets seeded.
func OpenGuard(ctx context.Context, conf *core.Config, logger core.Logger) (*records.Guard, error) {
	store, err := Open(ctx, conf, logger)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	guard := records.NewGuard(store, logger)
	if err = guard.Init(ctx); err != nil {
		_ = guard.Close()
		return nil, errors.Wrap(err, "initializing store")
	}
	return guard, nil
}
