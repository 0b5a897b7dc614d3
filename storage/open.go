package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/storage/kvstore/filekv"
	"github.com/sgunigpa/gpacalc/storage/kvstore/memkv"
	"github.com/sgunigpa/gpacalc/storage/kvstore/sqlkv"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the KV store selected by conf.Driver and a func releasing it.
func Open(ctx context.Context, conf core.StorageConfig) (core.KVStore, func() error, error) {
	nop := func() error { return nil }

	switch driver := strings.ToLower(conf.Driver); driver {
	case DriverMemory:
		return memkv.Open(), nop, nil
	case DriverFile, "":
		store, err := filekv.Open(conf.Path)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening file store")
		}
		return store, nop, nil
	case sqlkv.DriverPostgres, sqlkv.DriverPGX, sqlkv.DriverSQLite:
		store, err := sqlkv.Open(ctx, driver, conf.DSN)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening %s store", driver)
		}
		return store, store.Close, nil
	default:
		return nil, nil, errors.Wrap(ErrUnknownDriver, conf.Driver)
	}
}
