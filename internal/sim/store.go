package sim

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"statline/internal/stats"
)

// Store is the simulation's own durable state: typed fields and dynamic
// counters per player, persisted between runs. The resolver core never reads
// it; snapshots are always rebuilt from live data on refresh.
type Store struct {
	db       *sql.DB
	filename string
}

// OpenStore opens or creates the simulation database.
func OpenStore(filename string) (*Store, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, filename: filename}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS typed_stats (
			player TEXT NOT NULL,
			field  TEXT NOT NULL,
			value  INTEGER NOT NULL,
			PRIMARY KEY (player, field)
		)`,
		`CREATE TABLE IF NOT EXISTS dynamic_counters (
			player TEXT NOT NULL,
			key    TEXT NOT NULL,
			value  INTEGER NOT NULL,
			PRIMARY KEY (player, key)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SavePlayer writes one player's full record inside a transaction.
func (s *Store) SavePlayer(player string, p *PlayerStats) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	typedStmt, err := tx.Prepare(
		`INSERT INTO typed_stats (player, field, value) VALUES (?, ?, ?)
		 ON CONFLICT (player, field) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("failed to prepare typed upsert: %w", err)
	}
	defer typedStmt.Close()
	for _, name := range stats.FieldNames {
		if _, err := typedStmt.Exec(player, name, int64(p.TypedField(name))); err != nil {
			return fmt.Errorf("failed to save field %s: %w", name, err)
		}
	}

	counterStmt, err := tx.Prepare(
		`INSERT INTO dynamic_counters (player, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (player, key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("failed to prepare counter upsert: %w", err)
	}
	defer counterStmt.Close()
	for key, value := range p.Counters {
		if _, err := counterStmt.Exec(player, key, int64(value)); err != nil {
			return fmt.Errorf("failed to save counter %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// LoadPlayer reads one player's record. Returns nil when nothing has been
// persisted for that player yet.
func (s *Store) LoadPlayer(player string) (*PlayerStats, error) {
	p := NewPlayerStats()
	found := false

	rows, err := s.db.Query(`SELECT field, value FROM typed_stats WHERE player = ?`, player)
	if err != nil {
		return nil, fmt.Errorf("failed to load typed stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var field string
		var value int64
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan typed stat: %w", err)
		}
		p.SetTyped(field, uint64(value))
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counters, err := s.db.Query(`SELECT key, value FROM dynamic_counters WHERE player = ?`, player)
	if err != nil {
		return nil, fmt.Errorf("failed to load counters: %w", err)
	}
	defer counters.Close()
	for counters.Next() {
		var key string
		var value int64
		if err := counters.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		p.Counters[key] = uint64(value)
		found = true
	}
	if err := counters.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}
	return p, nil
}
