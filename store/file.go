package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// fileDocument is the on-disk layout
//
//	[scores]
//	highestScore = 120
type fileDocument struct {
	Scores map[string]int `toml:"scores"`
}

// FileStore persists values in a TOML file
// The whole file is rewritten on every Set via temp file and rename
type FileStore struct {
	mu     sync.Mutex
	path   string
	doc    fileDocument
	closed bool
}

// OpenFileStore loads path, a missing file starts empty
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}

	s := &FileStore{
		path: path,
		doc:  fileDocument{Scores: make(map[string]int)},
	}

	if _, err := toml.DecodeFile(path, &s.doc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file store: decode %s: %w", path, err)
		}
	}
	if s.doc.Scores == nil {
		s.doc.Scores = make(map[string]int)
	}
	return s, nil
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false, ErrClosed
	}
	v, ok := s.doc.Scores[key]
	return v, ok, nil
}

func (s *FileStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, had := s.doc.Scores[key]
	s.doc.Scores[key] = value
	if err := s.writeLocked(); err != nil {
		if had {
			s.doc.Scores[key] = prev
		} else {
			delete(s.doc.Scores, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) writeLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("file store: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(s.doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file store: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}
