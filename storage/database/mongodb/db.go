// Package mongodb stores the document as a single MongoDB document replaced on every save.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

const (
	collectionName = "documents"
	documentID     = "marksheet"
	connectTimeout = 10 * time.Second
)

type DB struct {
	client *mongo.Client
	col    *mongo.Collection
	seed   core.SeedConfig
	logger core.Logger
}

var _ records.Store = (*DB)(nil)

func Open(ctx context.Context, uri, dbName string, seed core.SeedConfig, logger core.Logger) (*DB, error) {
	if uri == "" {
		return nil, errors.New("mongodb: empty dsn")
	}
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout)
	client, err := mongo.Connect(connCtx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err = client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging mongodb")
	}

	return &DB{
		client: client,
		col:    client.Database(dbName).Collection(collectionName),
		seed:   seed,
		logger: logger,
	}, nil
}

func (s *DB) Load(ctx context.Context) (*records.Database, error) {
	var doc document
	err := s.col.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		db := records.Seed(s.seed.AdminPassword, s.seed.AdminName)
		if err = s.Save(ctx, db); err != nil {
			return nil, err
		}
		s.logger.Info("database seeded", map[string]interface{}{"collection": s.col.Name()})
		return db, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding document")
	}
	db := doc.records()
	db.Normalize()
	return db, nil
}

func (s *DB) Save(ctx context.Context, db *records.Database) error {
	doc := fromRecords(db)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": documentID}, doc, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "replacing document")
}

func (s *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
