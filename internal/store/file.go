package store

import (
	"context"
	"os"
	"path/filepath"
)

// FileTier keeps one JSON file per key under a directory. It is the fast,
// synchronous tier.
type FileTier struct {
	Dir string
}

func (t FileTier) path(key string) string {
	return filepath.Join(t.Dir, key+".json")
}

func (t FileTier) Load(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(t.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (t FileTier) Save(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(t.path(key), value, 0o644)
}
