package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// GetSetting retrieves one settings value by key. A missing key is not an
// error; ok reports whether the key existed.
func GetSetting(conn *sql.DB, key string) (value string, ok bool, err error) {
	err = conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// UpsertSetting writes one settings value.
func UpsertSetting(conn *sql.DB, key, value string) error {
	_, err := conn.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}

// Store adapts the settings table to the key-value capability the tank
// service consumes. Read errors fall back to the caller's default.
type Store struct {
	conn *sql.DB
}

func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) Get(key, fallback string) string {
	value, ok, err := GetSetting(s.conn, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Settings read failed, using fallback")
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}

func (s *Store) Set(key, value string) error {
	return UpsertSetting(s.conn, key, value)
}
