// Package postgres stores the document as a single JSONB row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

const documentID = "marksheet"

const schema = `
CREATE TABLE IF NOT EXISTS marksheet_document (
	id         TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type row struct {
	ID        string    `db:"id"`
	Body      string    `db:"body"`
	UpdatedAt time.Time `db:"updated_at"`
}

type DB struct {
	db     *sqlx.DB
	seed   core.SeedConfig
	logger core.Logger
}

var _ records.Store = (*DB)(nil)

// Open connects to dsn, waits for the server and creates the schema if it does not exist.
func Open(ctx context.Context, dsn string, seed core.SeedConfig, logger core.Logger) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres: empty dsn")
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &DB{db: db, seed: seed, logger: logger}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

func (s *DB) Load(ctx context.Context) (*records.Database, error) {
	var r row
	err := s.db.GetContext(ctx, &r, "SELECT id, body::text AS body, updated_at FROM marksheet_document WHERE id = $1", documentID)
	if err == sql.ErrNoRows {
		doc := records.Seed(s.seed.AdminPassword, s.seed.AdminName)
		if err = s.Save(ctx, doc); err != nil {
			return nil, err
		}
		s.logger.Info("database seeded", map[string]interface{}{"table": "marksheet_document"})
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting document")
	}

	return decodeRow(r)
}

func (s *DB) Save(ctx context.Context, doc *records.Database) error {
	r, err := encodeRow(doc, time.Now().UTC())
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO marksheet_document (id, body, updated_at)
		VALUES (:id, :body, :updated_at)
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`, r)
	return errors.Wrap(err, "upserting document")
}

func encodeRow(doc *records.Database, updatedAt time.Time) (row, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return row{}, errors.Wrap(err, "encoding document")
	}
	return row{ID: documentID, Body: string(body), UpdatedAt: updatedAt}, nil
}

func decodeRow(r row) (*records.Database, error) {
	doc := new(records.Database)
	if err := json.Unmarshal([]byte(r.Body), doc); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	doc.Normalize()
	return doc, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}
