package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"

	"blockpatch/internal/rewrite"
	"blockpatch/pkg/block"
)

// Store abstracts journal persistence for testability.
type Store interface {
	Load() (Journal, error)
	Append(PatchRecord) error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	File string
}

func NewFileStore(file string) *FileStore {
	return &FileStore{File: file}
}

// Load returns the journal; a missing or empty file is an empty journal.
func (fs *FileStore) Load() (Journal, error) {
	var j Journal
	f, err := os.Open(fs.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(&j); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return j, nil
}

func (fs *FileStore) Append(rec PatchRecord) error {
	j, err := fs.Load()
	if err != nil {
		return err
	}
	j = append(j, rec)
	return fs.save(j)
}

// save replaces the journal atomically so an interrupted write never
// leaves it unreadable.
func (fs *FileStore) save(j Journal) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return err
	}
	return rewrite.WriteFile(fs.File, block.Document(buf.Bytes()))
}

// InMemoryStore implements Store for testing (no disk I/O).
type InMemoryStore struct {
	mu      sync.Mutex
	records Journal
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (ms *InMemoryStore) Load() (Journal, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	// Return a copy to avoid mutation
	cpy := make(Journal, len(ms.records))
	copy(cpy, ms.records)
	return cpy, nil
}

func (ms *InMemoryStore) Append(rec PatchRecord) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records = append(ms.records, rec)
	return nil
}
