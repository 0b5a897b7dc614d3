package filekv

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sgunigpa/gpacalc/core"
)

var ErrEmptyKey = errors.New("empty key")

// Store keeps one file per key under a base directory.
type Store struct {
	base string
}

var _ core.KVStore = (*Store)(nil)

// Open creates base if needed. An empty base defaults to ./data.
func Open(base string) (*Store, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating storage directory")
	}
	return &Store{base: base}, nil
}

// path escapes key so that it always names a file directly under base.
func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return filepath.Join(s.base, url.PathEscape(key)+".json"), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	return blob, nil
}

// Set replaces the file atomically: readers see either the old or the new blob.
func (s *Store) Set(_ context.Context, key string, blob []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.base, filepath.Base(p)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after a successful rename

	if _, err = tmp.Write(blob); err == nil {
		err = tmp.Sync()
	}
	if cErr := tmp.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	if err = os.Rename(tmp.Name(), p); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}
