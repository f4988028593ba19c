// Package storage is the local key-value persistence of the client.
// Values are stored JSON-encoded.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	TimeSlotKey = "time_slot"
	TokenKey    = "auth-token"
)

var ErrEmptyKey = errors.New("empty storage key")

type Storage interface {
	// Get decodes the value of key into dst and reports whether it exists.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Open creates the backend by type: "sqlite" (default), "file" or "memory".
func Open(typ, path string) (Storage, error) {
	switch typ {
	case "", "sqlite":
		if err := ensureDir(path); err != nil {
			return nil, err
		}

		return OpenDB(path)
	case "file":
		if err := ensureDir(path); err != nil {
			return nil, err
		}

		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}

		return s, s.Start()
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", typ)
	}
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}

	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}

	return string(b), nil
}

func decode(s string, dst any) error {
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	return nil
}
