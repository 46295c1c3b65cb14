package model

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local KeyValueStore. Values vanish on exit.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]KeyValue
}

var _ PreferenceStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]KeyValue)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, ok := s.values[key]
	return kv.Value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = KeyValue{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Entries() ([]KeyValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]KeyValue, 0, len(s.values))
	for _, kv := range s.values {
		out = append(out, kv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
