package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// File is a Store persisted as one JSON document on disk: a per-machine
// state file that survives restarts, much like browser-local storage.
// A corrupt file is logged and treated as empty, never surfaced.
type File struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	data map[string]string
	subs *subscribers
}

func OpenFile(path string, log *zap.Logger) (*File, error) {
	f := &File{
		path: path,
		log:  log,
		data: make(map[string]string),
		subs: newSubscribers(),
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run, nothing persisted yet.
	case err != nil:
		return nil, fmt.Errorf("read state file: %w", err)
	default:
		if err := json.Unmarshal(raw, &f.data); err != nil {
			f.log.Warn("state file corrupt, starting empty",
				zap.String("path", path), zap.Error(err))
			f.data = make(map[string]string)
		}
	}

	return f, nil
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.data[key] = value
	err := f.persistLocked()
	f.mu.Unlock()

	if err != nil {
		return err
	}
	f.subs.notify(Event{Key: key, Value: value})
	return nil
}

func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.data, key)
	err := f.persistLocked()
	f.mu.Unlock()

	if err != nil {
		return err
	}
	f.subs.notify(Event{Key: key, Removed: true})
	return nil
}

func (f *File) Subscribe(key string, fn func(Event)) func() {
	return f.subs.add(key, fn)
}

func (f *File) Close() error {
	return nil
}

// persistLocked rewrites the whole document. Write-then-rename keeps a
// crash from leaving a half-written file behind.
func (f *File) persistLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
