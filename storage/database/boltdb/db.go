// Package boltdb stores the document in a bbolt file, one bucket per collection.
package boltdb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

var (
	usersBucket    = []byte("users")
	teachersBucket = []byte("teachers")
	studentsBucket = []byte("students")
	resultsBucket  = []byte("results")
	metaBucket     = []byte("meta")

	collections = [][]byte{usersBucket, teachersBucket, studentsBucket, resultsBucket}

	seededKey = []byte("seeded_at")
)

type DB struct {
	db     *bbolt.DB
	seed   core.SeedConfig
	logger core.Logger
}

var _ records.Store = (*DB)(nil)

func Open(path string, seed core.SeedConfig, logger core.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening "+path)
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range append(collections, metaBucket) {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, errors.Wrap(err, "creating buckets")
	}
	return &DB{db: bdb, seed: seed, logger: logger}, nil
}

func (s *DB) Load(ctx context.Context) (*records.Database, error) {
	doc := new(records.Database)
	seeded := true

	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(metaBucket).Get(seededKey) == nil {
			seeded = false
			return nil
		}
		var err error
		if doc.Users, err = readBucket[records.User](tx, usersBucket); err != nil {
			return err
		}
		if doc.Teachers, err = readBucket[records.Profile](tx, teachersBucket); err != nil {
			return err
		}
		if doc.Students, err = readBucket[records.Profile](tx, studentsBucket); err != nil {
			return err
		}
		doc.Results, err = readBucket[records.Result](tx, resultsBucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading buckets")
	}

	if !seeded {
		doc = records.Seed(s.seed.AdminPassword, s.seed.AdminName)
		if err = s.Save(ctx, doc); err != nil {
			return nil, err
		}
		s.logger.Info("database seeded", map[string]interface{}{"path": s.db.Path()})
		return doc, nil
	}
	doc.Normalize()
	return doc, nil
}

// Save replaces every collection bucket inside a single transaction.
func (s *DB) Save(_ context.Context, doc *records.Database) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := writeBucket(tx, usersBucket, doc.Users); err != nil {
			return err
		}
		if err := writeBucket(tx, teachersBucket, doc.Teachers); err != nil {
			return err
		}
		if err := writeBucket(tx, studentsBucket, doc.Students); err != nil {
			return err
		}
		if err := writeBucket(tx, resultsBucket, doc.Results); err != nil {
			return err
		}
		meta := tx.Bucket(metaBucket)
		if meta.Get(seededKey) != nil {
			return nil
		}
		return meta.Put(seededKey, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	return errors.Wrap(err, "writing buckets")
}

func (s *DB) Close() error {
	return s.db.Close()
}

func readBucket[T any](tx *bbolt.Tx, name []byte) (map[string]T, error) {
	out := make(map[string]T)
	err := tx.Bucket(name).ForEach(func(k, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return errors.Wrapf(err, "decoding %s/%s", name, k)
		}
		out[string(k)] = item
		return nil
	})
	return out, err
}

func writeBucket[T any](tx *bbolt.Tx, name []byte, items map[string]T) error {
	if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
		return err
	}
	b, err := tx.CreateBucket(name)
	if err != nil {
		return err
	}
	for k, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return errors.Wrapf(err, "encoding %s/%s", name, k)
		}
		if err = b.Put([]byte(k), data); err != nil {
			return err
		}
	}
	return nil
}
