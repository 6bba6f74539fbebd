package db

import (
	"context"
	"errors"
	"fmt"

	"news_reader/internal/prefs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// Migrate создаёт таблицу preferences, если её ещё нет.
func (db *Database) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS preferences (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            search_term TEXT NOT NULL,
            order_by TEXT NOT NULL,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
        )
    `)
	return err
}

// PrefsStore хранит единственную строку настроек в таблице preferences.
type PrefsStore struct {
	db *Database
}

func NewPrefsStore(db *Database) *PrefsStore {
	return &PrefsStore{db: db}
}

// Load возвращает сохранённые настройки или Defaults(), если строки ещё нет.
func (s *PrefsStore) Load(ctx context.Context) (prefs.Preferences, error) {
	var p prefs.Preferences
	err := s.db.Pool.QueryRow(ctx, `
        SELECT search_term, order_by FROM preferences WHERE id = 1
    `).Scan(&p.SearchTerm, &p.OrderBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return prefs.Defaults(), nil
	}
	if err != nil {
		return prefs.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return p.Normalize(), nil
}

// Save сохраняет настройки. При конфликте по id строка обновляется.
func (s *PrefsStore) Save(ctx context.Context, p prefs.Preferences) error {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.db.Pool.Exec(ctx, `
        INSERT INTO preferences (id, search_term, order_by)
        VALUES (1, $1, $2)
        ON CONFLICT (id) DO UPDATE
        SET search_term = EXCLUDED.search_term, order_by = EXCLUDED.order_by, updated_at = NOW()
    `, p.SearchTerm, p.OrderBy)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
