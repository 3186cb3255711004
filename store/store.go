package store

import (
	"errors"
	"fmt"
	"strings"
)

// Store is a small key to integer map that survives restarts
type Store interface {
	// Get returns the value for key; ok is false when the key was never set
	Get(key string) (value int, ok bool, err error)
	Set(key string, value int) error
	Close() error
}

// Kind selects a Store implementation
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

var (
	ErrUnknownKind = errors.New("unknown store kind")
	ErrClosed      = errors.New("store closed")
)

// ParseKind accepts memory, file, toml, sqlite or db in any case
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory", "mem":
		return KindMemory, nil
	case "file", "toml", "":
		return KindFile, nil
	case "sqlite", "db":
		return KindSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Open creates the store of the given kind, path is ignored for memory
func Open(kind Kind, path string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile:
		return OpenFileStore(path)
	case KindSQLite:
		return OpenSQLiteStore(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}
