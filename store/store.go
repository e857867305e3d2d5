// Package store persists compiled chunks in SQLite, keyed by generated IDs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/aviralg/clox/pkg/bytecode"
)

// ErrChunkNotFound indicates the requested chunk doesn't exist.
var ErrChunkNotFound = errors.New("chunk not found")

// Store handles SQLite storage for compiled chunks. Chunk bytes are the
// CBOR wire format from the bytecode package, so anything loaded back has
// already passed decode-time validation.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Entry identifies one stored chunk.
type Entry struct {
	ID   string
	Name string
}

// Open creates a storage layer backed by the SQLite file at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes the chunk and inserts it under a fresh ID, which is
// returned.
func (s *Store) Save(c *bytecode.Chunk) (string, error) {
	data, err := bytecode.MarshalChunk(c)
	if err != nil {
		return "", fmt.Errorf("serializing chunk %q: %w", c.Name, err)
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("INSERT INTO chunks (id, name, data) VALUES (?, ?, ?)", id, c.Name, data); err != nil {
		return "", fmt.Errorf("inserting chunk %q: %w", c.Name, err)
	}
	return id, nil
}

// Load returns the chunk stored under the given ID.
func (s *Store) Load(id string) (*bytecode.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM chunks WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chunk %s: %w", id, ErrChunkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading chunk %s: %w", id, err)
	}

	c, err := bytecode.UnmarshalChunk(data)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", id, err)
	}
	return c, nil
}

// LoadByName returns the most recently saved chunk with the given name.
func (s *Store) LoadByName(name string) (*bytecode.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM chunks WHERE name = ? ORDER BY rowid DESC LIMIT 1", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chunk named %q: %w", name, ErrChunkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading chunk named %q: %w", name, err)
	}

	c, err := bytecode.UnmarshalChunk(data)
	if err != nil {
		return nil, fmt.Errorf("chunk named %q: %w", name, err)
	}
	return c, nil
}

// List returns all stored chunks in insertion order.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, name FROM chunks ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
