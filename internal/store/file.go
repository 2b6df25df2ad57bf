package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps every slot in one JSON object on disk. Each Save rewrites the
// file through a temporary sibling and a rename.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[Slot]json.RawMessage
}

// OpenFile loads path if it exists. A missing file starts empty.
func OpenFile(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	s := &FileStore{
		path:   filepath.Clean(path),
		values: make(map[Slot]json.RawMessage),
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns a copy of the slot's value.
func (s *FileStore) Load(ctx context.Context, slot Slot) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save stores a value and flushes the file.
func (s *FileStore) Save(ctx context.Context, slot Slot, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSlot(slot); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("save slot %s: value is not valid JSON", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[slot] = append(json.RawMessage(nil), value...)
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Close is a no-op; every Save is already durable.
func (s *FileStore) Close() error {
	return nil
}
