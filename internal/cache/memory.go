package cache

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Store. It is used in tests and as the working
// set for snapshot-based backends.
type Memory struct {
	mu      sync.RWMutex
	entries map[Key][]string
	version uint64 // bumped on every new entry
	saved   uint64 // version last persisted
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{entries: make(map[Key][]string)}
}

func (m *Memory) Get(_ context.Context, key Key) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	links, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(links), true
}

func (m *Memory) Put(_ context.Context, key Key, links []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; ok {
		return nil
	}
	if links == nil {
		links = []string{}
	}
	m.entries[key] = slices.Clone(links)
	m.version++
	return nil
}

func (m *Memory) Len(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *Memory) Load(context.Context) error { return nil }

func (m *Memory) Save(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// snapshot returns a copy of all entries keyed by Key.String and the
// version it reflects. changed is false when that version is already saved.
func (m *Memory) snapshot() (entries map[string][]string, version uint64, changed bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries = make(map[string][]string, len(m.entries))
	for k, v := range m.entries {
		entries[k.String()] = v
	}
	return entries, m.version, m.version != m.saved
}

// restore merges entries into the store without overwriting existing keys
func (m *Memory) restore(entries map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for raw, links := range entries {
		key, err := ParseKey(raw)
		if err != nil {
			return err
		}
		if _, ok := m.entries[key]; !ok {
			m.entries[key] = links
		}
	}
	return nil
}

func (m *Memory) markSaved(version uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version > m.saved {
		m.saved = version
	}
}
