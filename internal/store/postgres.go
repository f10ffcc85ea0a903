package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore создает хранилище коллекций поверх PostgreSQL.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool}
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) bootstrap(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS collections (
		   key        TEXT PRIMARY KEY,
		   doc        JSONB NOT NULL,
		   updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`,
	)
	if err != nil {
		return fmt.Errorf("bootstrap collections table: %w", err)
	}
	return nil
}

// Get возвращает документ коллекции целиком.
func (s *PostgresStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc json.RawMessage

	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM collections WHERE key = $1`,
		key,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return doc, nil
}

// Set заменяет документ коллекции целиком.
func (s *PostgresStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO collections (key, doc, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		key, doc,
	)
	return err
}

// Close закрывает пул подключений.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
