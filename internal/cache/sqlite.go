package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/logging"
)

// SQLite keeps items in a private in-memory SQLite database. Nothing is
// written to disk, so the cache still dies with the process.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLite creates the database and its single table.
func OpenSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every new connection to ":memory:" is a fresh database, so pin the pool to one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get returns the cached item. Query failures count as a miss.
func (s *SQLite) Get(id hn.StoryID) (hn.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM items WHERE id = ?`, int64(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return hn.Item{}, false
	}
	if err != nil {
		logging.Warn("cache read failed", "id", id, "err", err)
		return hn.Item{}, false
	}

	var it hn.Item
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		logging.Warn("cache decode failed", "id", id, "err", err)
		return hn.Item{}, false
	}
	return it, true
}

// Put stores item under id, replacing any earlier value. A failed write is
// logged and dropped; the id is simply fetched again next time.
func (s *SQLite) Put(id hn.StoryID, item hn.Item) {
	payload, err := json.Marshal(item)
	if err != nil {
		logging.Warn("cache encode failed", "id", id, "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO items (id, payload) VALUES (?, ?)`, int64(id), string(payload)); err != nil {
		logging.Warn("cache write failed", "id", id, "err", err)
	}
}

func (s *SQLite) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close releases the database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
