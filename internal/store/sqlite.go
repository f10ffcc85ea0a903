package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает файловое хранилище коллекций на SQLite.
// Подходит для однопользовательского развертывания без внешней БД.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Один писатель, файловая блокировка SQLite.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) bootstrap(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS collections (
		   key        TEXT PRIMARY KEY,
		   doc        TEXT NOT NULL,
		   updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		 )`,
	)
	if err != nil {
		return fmt.Errorf("bootstrap collections table: %w", err)
	}
	return nil
}

// Get возвращает документ коллекции целиком.
func (s *SQLiteStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc string

	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM collections WHERE key = ?`,
		key,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return json.RawMessage(doc), nil
}

// Set заменяет документ коллекции целиком.
func (s *SQLiteStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (key, doc, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT (key) DO UPDATE SET doc = excluded.doc, updated_at = datetime('now')`,
		key, string(doc),
	)
	return err
}

// Close закрывает базу данных.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
