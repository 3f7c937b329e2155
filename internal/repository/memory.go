package repository

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory SlotStore. It backs tests and storage-less
// runs with the same snapshot semantics as the database-backed store.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) Load(name string, out interface{}) (bool, error) {
	m.mu.RLock()
	data, ok := m.slots[name]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.slots[name] = string(data)
	m.mu.Unlock()
	return nil
}

// SeedRaw stores a raw document verbatim, bypassing marshalling. Tests use
// it to simulate corrupted slot contents.
func (m *MemoryStore) SeedRaw(name, raw string) {
	m.mu.Lock()
	m.slots[name] = raw
	m.mu.Unlock()
}
