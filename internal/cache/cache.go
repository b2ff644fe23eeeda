// Package cache remembers every item fetched during a run.
//
// Entries are never evicted or refreshed: once an id resolves, that item
// (or its placeholder) is trusted until the process exits.
package cache

import (
	"fmt"
	"sync"

	"github.com/abelbrown/hncli/internal/hn"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Cache maps story ids to fetched items. Implementations are safe for
// concurrent use; two concurrent Puts for one id leave the last write.
type Cache interface {
	Get(id hn.StoryID) (hn.Item, bool)
	Put(id hn.StoryID, item hn.Item)
	Len() int
}

// New builds the named backend.
func New(backend string) (Cache, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite()
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Memory is the default map-backed cache.
type Memory struct {
	mu    sync.RWMutex
	items map[hn.StoryID]hn.Item
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[hn.StoryID]hn.Item)}
}

func (m *Memory) Get(id hn.StoryID) (hn.Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	return it, ok
}

func (m *Memory) Put(id hn.StoryID, item hn.Item) {
	m.mu.Lock()
	m.items[id] = item
	m.mu.Unlock()
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
