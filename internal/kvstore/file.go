package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// fileDocument is the on-disk layout of the local fallback store. Counters
// are kept separate from plain values so that view counts serialize as
// integers (a map of slug key to count), matching what the analytics
// aggregator expects to read back.
type fileDocument struct {
	Values   map[string]string   `json:"values,omitempty"`
	Counters map[string]int64    `json:"counters,omitempty"`
	Sets     map[string][]string `json:"sets,omitempty"`
}

// FileStore is the local development fallback: a single JSON file read with
// a full-file parse and written with a full-file overwrite on every
// mutation. Not incremental, not meant for production traffic.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  fileDocument
}

// NewFileStore opens (or creates) the JSON file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.doc = emptyDocument()
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("failed to parse store file: %w", err)
		}
		if s.doc.Values == nil {
			s.doc.Values = make(map[string]string)
		}
		if s.doc.Counters == nil {
			s.doc.Counters = make(map[string]int64)
		}
		if s.doc.Sets == nil {
			s.doc.Sets = make(map[string][]string)
		}
	}

	return s, nil
}

func emptyDocument() fileDocument {
	return fileDocument{
		Values:   make(map[string]string),
		Counters: make(map[string]int64),
		Sets:     make(map[string][]string),
	}
}

// flushLocked overwrites the whole file. Caller holds s.mu.
func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, ok := s.doc.Values[key]; ok {
		return val, nil
	}
	if n, ok := s.doc.Counters[key]; ok {
		return strconv.FormatInt(n, 10), nil
	}
	return "", ErrKeyNotFound
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Values[key] = value
	return s.flushLocked()
}

func (s *FileStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, inValues := s.doc.Values[key]
	_, inCounters := s.doc.Counters[key]
	if !inValues && !inCounters {
		return false, nil
	}
	delete(s.doc.Values, key)
	delete(s.doc.Counters, key)
	return true, s.flushLocked()
}

func (s *FileStore) Increment(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Counters[key]++
	if err := s.flushLocked(); err != nil {
		return 0, err
	}
	return s.doc.Counters[key], nil
}

func (s *FileStore) KeysByPrefix(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.doc.Values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	for key := range s.doc.Counters {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *FileStore) BatchGet(ctx context.Context, keys []string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		val, err := s.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				continue
			}
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

func (s *FileStore) SetAdd(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setAddLocked(key, member)
	return s.flushLocked()
}

func (s *FileStore) setAddLocked(key, member string) {
	for _, m := range s.doc.Sets[key] {
		if m == member {
			return
		}
	}
	s.doc.Sets[key] = append(s.doc.Sets[key], member)
}

func (s *FileStore) SetRemove(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.doc.Sets[key]
	for i, m := range members {
		if m == member {
			s.doc.Sets[key] = append(members[:i], members[i+1:]...)
			return s.flushLocked()
		}
	}
	return nil
}

func (s *FileStore) SetMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]string, len(s.doc.Sets[key]))
	copy(members, s.doc.Sets[key])
	return members, nil
}

func (s *FileStore) SetIndexed(_ context.Context, key, value, indexKey, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Values[key] = value
	s.setAddLocked(indexKey, member)
	return s.flushLocked()
}

func (s *FileStore) Ping(_ context.Context) error {
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
