package xsnow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigSource supplies raw preference values. ParseConfig turns them into a
// Config.
type ConfigSource interface {
	Values() (map[string]string, error)
}

// WritableSource is a ConfigSource that hosts can change at runtime, for
// example from key bindings.
type WritableSource interface {
	ConfigSource
	Set(key, value string) error
}

// MapSource is an in-memory ConfigSource.
type MapSource struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapSource creates a source holding a copy of values.
func NewMapSource(values map[string]string) *MapSource {
	return &MapSource{values: maps.Clone(values)}
}

// Values returns a copy of the current values.
func (m *MapSource) Values() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values), nil
}

// Set stores a value.
func (m *MapSource) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// FileSource reads preferences from a JSON object on disk. Values may be
// JSON strings, numbers or booleans; they are handed to ParseConfig as
// strings. A missing file yields no values, so every key takes its default.
type FileSource struct {
	Path string

	mu    sync.Mutex
	known []byte // contents last written or reported by Watch
}

// NewFileSource creates a source for the JSON file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// DefaultPrefsPath returns the per-user preferences file location.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xsnow", "prefs.json"), nil
}

// Values reads the file. Unrecognized keys are logged and ignored.
func (f *FileSource) Values() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Set rewrites the file with key changed.
func (f *FileSource) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if values == nil {
		values = make(map[string]string)
	}
	values[key] = value
	return f.write(values)
}

// Save replaces the file contents with values.
func (f *FileSource) Save(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(values)
}

// Watch calls fn after each change to the file until ctx is done or the
// watch fails. Bursts of events within debounce of each other are reported
// once, and contents written through Set or Save are not reported. The
// directory is watched, so atomic replacements and a first creation count.
func (f *FileSource) Watch(ctx context.Context, debounce time.Duration, fn func()) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("watch preferences: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch preferences: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch preferences: %w", err)
	}

	f.mu.Lock()
	f.known = readRaw(f.Path)
	f.mu.Unlock()

	name := filepath.Clean(f.Path)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == name {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("xsnow: watch preferences: %v", err)
		case <-timer.C:
			if f.changed() {
				fn()
			}
		}
	}
}

// changed reports whether the file differs from the contents last written or
// reported, and remembers the new contents.
func (f *FileSource) changed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := readRaw(f.Path)
	if bytes.Equal(data, f.known) {
		return false
	}
	f.known = data
	return true
}

// readRaw returns the file contents, or nil if it cannot be read.
func readRaw(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

func (f *FileSource) read() (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", f.Path, err)
	}

	values := make(map[string]string, len(raw))
	for key, v := range raw {
		if !slices.Contains(Keys, key) {
			log.Printf("xsnow: unrecognised preference key %q in %s", key, f.Path)
			continue
		}
		switch v := v.(type) {
		case string:
			values[key] = v
		case bool:
			values[key] = strconv.FormatBool(v)
		case float64:
			values[key] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, nil
}

func (f *FileSource) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	f.known = data
	return nil
}
