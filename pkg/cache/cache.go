// Package cache is a small durable key/value cache kept as a YAML file. It
// holds preferences that must survive a restart before the remote store
// has been queried again.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the cache file created inside the data directory.
const FileName = "cache.yaml"

// File is a YAML-backed cache. The whole map is rewritten on every Set.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the cache at path. A missing or unreadable file starts empty.
func Open(path string) *File {
	c := &File{path: path, values: map[string]string{}}

	content, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := yaml.Unmarshal(content, &c.values); err != nil || c.values == nil {
		c.values = map[string]string{}
	}
	return c
}

// Get returns the cached value for key.
func (c *File) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key and persists the cache. The in-memory value
// is updated even when writing the file fails.
func (c *File) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value
	return c.flush()
}

func (c *File) flush() error {
	content, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}
