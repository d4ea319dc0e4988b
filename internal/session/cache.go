// Package session holds the per-process state of an operator session: the
// parsed-document cache and the accumulated report selection.
package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgallion1/covolex/internal/covoltree"
	"github.com/dgallion1/covolex/internal/extract"
)

// NotFoundError reports an unreadable document path.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not readable: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Entry is one loaded document with everything precomputed at load time.
// Entries are read-only after construction.
type Entry struct {
	Path       string
	Name       string
	Size       int64
	Tree       *covoltree.Node
	Brands     []string
	Categories []extract.Category
	Metadata   extract.Record
}

// SizeString formats the document size for display, e.g. "12.34 KB".
func (e *Entry) SizeString() string {
	return fmt.Sprintf("%.2f KB", float64(e.Size)/1024)
}

// Cache parses each document path once and serves the parsed tree and its
// derived brand/category index for the rest of the session. It is owned by
// the application context and passed in explicitly; there is no package
// singleton.
type Cache struct {
	mu       sync.RWMutex
	docs     map[string]*Entry
	maxBytes int64
	logger   *slog.Logger
}

// NewCache creates an empty cache. maxBytes bounds individual document
// size, not the cache itself, which is unbounded for the process lifetime.
func NewCache(maxBytes int64, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		docs:     make(map[string]*Entry),
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Load returns the cached entry for path, reading and parsing the file on
// first use. A failed load never disturbs an existing entry for the same
// path. Unreadable paths yield *NotFoundError; malformed content yields
// *covoltree.ParseError. Concurrent first loads of the same path may parse
// twice, but every caller gets the same stored entry.
func (c *Cache) Load(path string) (*Entry, error) {
	c.mu.RLock()
	entry, ok := c.docs[path]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	entry, err := c.parse(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.docs[path]; ok {
		// Another load won the race; keep its entry.
		c.mu.Unlock()
		return existing, nil
	}
	c.docs[path] = entry
	c.mu.Unlock()

	c.logger.Info("document loaded",
		"path", path,
		"size", entry.Size,
		"brands", len(entry.Brands),
		"categories", len(entry.Categories),
	)
	return entry, nil
}

func (c *Cache) parse(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("document exceeds max size (%d bytes): %s", c.maxBytes, path)
	}

	tree, err := covoltree.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return &Entry{
		Path:       path,
		Name:       filepath.Base(path),
		Size:       int64(len(data)),
		Tree:       tree,
		Brands:     extract.Brands(tree),
		Categories: extract.Categories(data),
		Metadata:   extract.Metadata(tree),
	}, nil
}

// Get returns the entry for path without loading anything.
func (c *Cache) Get(path string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.docs[path]
	return entry, ok
}

// Invalidate drops the entry for path so the next Load re-parses it.
// It reports whether an entry was present.
func (c *Cache) Invalidate(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.docs[path]
	delete(c.docs, path)
	return ok
}

// Paths lists the currently cached document paths.
func (c *Cache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.docs))
	for p := range c.docs {
		paths = append(paths, p)
	}
	return paths
}
