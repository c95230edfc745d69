// Package jsonfile implements store.MaterialStore on top of a single JSON
// document file, the catalog's only durable state besides the binaries.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"studenthub/internal/model"
	"studenthub/internal/store"
)

// Store reads and writes the library document at a fixed path. Every mutation
// is a whole-document read-modify-write serialized through one mutex, so there
// is exactly one active writer per process and lost updates cannot happen
// between in-process callers.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store backed by the JSON file at path. The file is created
// lazily on first read or write.
func New(path string) *Store {
	return &Store{path: path}
}

var _ store.MaterialStore = (*Store)(nil)

// Read returns the current document. When the file does not exist yet it
// initializes an empty document on disk and returns that. A corrupt file is
// logged and answered with an empty fallback document; the on-disk bytes are
// left untouched so the damage stays inspectable.
func (s *Store) Read(ctx context.Context) (*model.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.readLocked()
	if err != nil {
		logJSON(map[string]any{
			"component": "store",
			"event":     "document_read_failed",
			"path":      s.path,
			"error":     err.Error(),
		})
		return model.NewLibrary(), nil
	}
	return lib, nil
}

// Write overwrites the whole document.
func (s *Store) Write(ctx context.Context, lib *model.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(lib)
}

// Append adds m to the end of the named collection.
func (s *Store) Append(ctx context.Context, collection string, m model.Material) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	items, ok := lib.Collection(collection)
	if !ok {
		return nil, store.ErrUnknownCollection
	}
	items = append(items, m)
	lib.SetCollection(collection, items)

	if err := s.writeLocked(lib); err != nil {
		return nil, err
	}
	stored := items[len(items)-1]
	return &stored, nil
}

// MutateAt applies fn to the record at pos and persists the result.
func (s *Store) MutateAt(ctx context.Context, collection string, pos int, fn func(*model.Material)) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	items, ok := lib.Collection(collection)
	if !ok {
		return nil, store.ErrUnknownCollection
	}
	if pos < 0 || pos >= len(items) {
		return nil, store.ErrNotFound
	}
	fn(&items[pos])
	lib.SetCollection(collection, items)

	if err := s.writeLocked(lib); err != nil {
		return nil, err
	}
	mutated := items[pos]
	return &mutated, nil
}

// RemoveAt splices out the record at pos and returns the removed record.
func (s *Store) RemoveAt(ctx context.Context, collection string, pos int) (model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.readLocked()
	if err != nil {
		return model.Material{}, err
	}
	items, ok := lib.Collection(collection)
	if !ok {
		return model.Material{}, store.ErrUnknownCollection
	}
	if pos < 0 || pos >= len(items) {
		return model.Material{}, store.ErrNotFound
	}
	removed := items[pos]
	items = append(items[:pos], items[pos+1:]...)
	lib.SetCollection(collection, items)

	if err := s.writeLocked(lib); err != nil {
		return model.Material{}, err
	}
	return removed, nil
}

// readLocked loads the document, initializing an empty one for a missing
// file. A corrupt file is an error: mutations propagate it and never clobber
// the damaged document, while Read degrades to an empty fallback.
func (s *Store) readLocked() (*model.Library, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := model.NewLibrary()
			if werr := s.writeLocked(lib); werr != nil {
				return nil, fmt.Errorf("initialize document: %w", werr)
			}
			return lib, nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}

	var lib model.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if lib.Ebooks == nil {
		lib.Ebooks = []model.Material{}
	}
	if lib.QuestionPapers == nil {
		lib.QuestionPapers = []model.Material{}
	}
	return &lib, nil
}

// writeLocked serializes the document to a temp file in the same directory and
// renames it into place, so readers never observe a partial write.
func (s *Store) writeLocked(lib *model.Library) error {
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "error"
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal store log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
