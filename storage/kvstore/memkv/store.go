package memkv

import (
	"context"
	"sync"

	"github.com/sgunigpa/gpacalc/core"
)

// Store keeps blobs in memory; its content is lost with the process.
type Store struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*Store)(nil)

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	blob, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (s *Store) Set(_ context.Context, key string, blob []byte) error {
	s.Lock()
	defer s.Unlock()

	s.table[key] = append([]byte(nil), blob...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.Lock()
	defer s.Unlock()

	delete(s.table, key)
	return nil
}
