// Package store holds the resumable migration state: the thread
// lookup table mapping canonical thread keys to migrated target
// message IDs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// LookupTable maps thread keys to target message IDs. An entry is
// added exactly once, when a thread root is first posted, and the
// table is flushed to disk synchronously after every insert so a
// crashed run can resume without re-posting roots.
type LookupTable struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	ids map[string]string
}

// OpenLookupTable loads the table at path, starting empty when the
// file does not exist yet.
func OpenLookupTable(path string, logger *zap.Logger) (*LookupTable, error) {
	t := &LookupTable{
		path:   path,
		logger: logger,
		ids:    make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("No existing lookup table, will create one", zap.String("path", path))
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lookup table: %w", err)
	}
	if err := json.Unmarshal(data, &t.ids); err != nil {
		return nil, fmt.Errorf("parse lookup table %s: %w", path, err)
	}
	logger.Info("Loaded lookup table",
		zap.String("path", path),
		zap.Int("entries", len(t.ids)))
	return t, nil
}

// Get returns the target message ID for a thread key.
func (t *LookupTable) Get(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.ids[key]
	return id, ok
}

// Has reports whether a thread key is already recorded.
func (t *LookupTable) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

func (t *LookupTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

// Put records a thread root and flushes to disk before returning.
// The first write for a key wins; repeating a key is a no-op.
func (t *LookupTable) Put(key, messageID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ids[key]; ok {
		return nil
	}
	t.ids[key] = messageID
	return t.flushLocked()
}

func (t *LookupTable) flushLocked() error {
	data, err := json.MarshalIndent(t.ids, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lookup table: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("write lookup table: %w", err)
	}
	return nil
}
