// Package store persists the project snapshot: the file map, the chat
// history, and the last-saved instant. Snapshots live in a small SQLite
// key-value table so a session survives restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"genstudio/model"
)

// ErrNoSnapshot is returned by Load when no project has been saved yet.
var ErrNoSnapshot = errors.New("store: no saved project")

const (
	keyFiles    = "project_files"
	keyMessages = "chat_messages"
	keySavedAt  = "saved_at"
)

// Snapshot is one saved project state.
type Snapshot struct {
	Files    map[string]string
	Messages []model.Message
	SavedAt  time.Time
}

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Open initializes the database at baseDir/genstudio.db, creating the
// directory and schema as needed. baseDir is a parameter so tests can use
// t.TempDir().
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create base directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "genstudio.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS snapshot (
	  key   TEXT PRIMARY KEY,
	  value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the snapshot atomically, stamping SavedAt with the current
// time in milliseconds.
func (s *Store) Save(files map[string]string, messages []model.Message) error {
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("store: encode files: %w", err)
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("store: encode messages: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin save: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO snapshot(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	for _, kv := range [][2]string{
		{keyFiles, string(filesJSON)},
		{keyMessages, string(messagesJSON)},
		{keySavedAt, now},
	} {
		if _, err := tx.Exec(upsert, kv[0], kv[1]); err != nil {
			return fmt.Errorf("store: save %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// Load reads the saved snapshot. A missing file-map key means no project
// was ever saved and yields ErrNoSnapshot.
func (s *Store) Load() (*Snapshot, error) {
	filesJSON, err := s.get(keyFiles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("store: load files: %w", err)
	}

	snap := &Snapshot{Files: make(map[string]string)}
	if err := json.Unmarshal([]byte(filesJSON), &snap.Files); err != nil {
		return nil, fmt.Errorf("store: decode files: %w", err)
	}

	if messagesJSON, err := s.get(keyMessages); err == nil {
		if err := json.Unmarshal([]byte(messagesJSON), &snap.Messages); err != nil {
			return nil, fmt.Errorf("store: decode messages: %w", err)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: load messages: %w", err)
	}

	if savedAt, err := s.get(keySavedAt); err == nil {
		if ms, parseErr := strconv.ParseInt(savedAt, 10, 64); parseErr == nil {
			snap.SavedAt = time.UnixMilli(ms)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: load saved_at: %w", err)
	}

	return snap, nil
}

// Clear removes the saved snapshot.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM snapshot`); err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshot WHERE key = ?`, key).Scan(&value)
	return value, err
}
