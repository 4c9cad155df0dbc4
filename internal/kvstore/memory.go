package kvstore

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore is a map-backed Store used by tests and as a last-resort
// fallback when neither Redis nor a writable data file is available.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	counters map[string]int64
	sets     map[string]map[string]struct{}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]string),
		counters: make(map[string]int64),
		sets:     make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.values[key]; ok {
		return val, nil
	}
	if n, ok := s.counters[key]; ok {
		return strconv.FormatInt(n, 10), nil
	}
	return "", ErrKeyNotFound
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, inValues := s.values[key]
	_, inCounters := s.counters[key]
	delete(s.values, key)
	delete(s.counters, key)
	return inValues || inCounters, nil
}

func (s *MemoryStore) Increment(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryStore) KeysByPrefix(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	for key := range s.counters {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *MemoryStore) BatchGet(ctx context.Context, keys []string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		val, err := s.Get(ctx, key)
		if err != nil {
			continue
		}
		values[i] = val
	}
	return values, nil
}

func (s *MemoryStore) SetAdd(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setAddLocked(key, member)
	return nil
}

func (s *MemoryStore) setAddLocked(key, member string) {
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]struct{})
	}
	s.sets[key][member] = struct{}{}
}

func (s *MemoryStore) SetRemove(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets[key], member)
	return nil
}

func (s *MemoryStore) SetMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]string, 0, len(s.sets[key]))
	for member := range s.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

func (s *MemoryStore) SetIndexed(_ context.Context, key, value, indexKey, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.setAddLocked(indexKey, member)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
