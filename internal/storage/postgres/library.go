package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/Vasu1712/scenecast/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenecast_library (
	key        TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// LibraryStore keeps the library as one JSONB row per key.
type LibraryStore struct {
	db  *sql.DB
	key string
}

// NewLibraryStore opens dsn, verifies the connection and creates the table if needed.
func NewLibraryStore(ctx context.Context, dsn, key string) (*LibraryStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create library table: %w", err)
	}
	return &LibraryStore{db: db, key: key}, nil
}

// Load reads the library row. A missing row yields (nil, nil).
func (s *LibraryStore) Load(ctx context.Context) (*models.Library, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM scenecast_library WHERE key = $1`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select library %s: %w", s.key, err)
	}
	var lib models.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return &lib, nil
}

// Save upserts the library row.
func (s *LibraryStore) Save(ctx context.Context, lib *models.Library) error {
	raw, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	query := `
		INSERT INTO scenecast_library (key, document, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.key, string(raw)); err != nil {
		return fmt.Errorf("upsert library %s: %w", s.key, err)
	}
	return nil
}

func (s *LibraryStore) Close() {
	s.db.Close()
}
