package sqlkv

import (
	"context"
	"database/sql"
	"embed"
	"path"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // driver: postgres
	"github.com/pkg/errors"
	"github.com/trezcool/goose"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/sgunigpa/gpacalc/core"
)

const (
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

var (
	ErrUnsupportedDriver = errors.New("unsupported sql driver")

	gooseRunFunc = goose.RunFS // mockable
)

const (
	getQuery    = `SELECT value FROM kv_store WHERE key = ?`
	deleteQuery = `DELETE FROM kv_store WHERE key = ?`
	setQuery    = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// Store keeps blobs in the kv_store table.
type Store struct {
	db            *sqlx.DB
	gooseDialect  string
	migrationsDir string
}

var _ core.KVStore = (*Store)(nil)

// dialect returns the goose dialect and the migrations directory of driver.
func dialect(driver string) (string, string, error) {
	switch driver {
	case DriverPostgres, DriverPGX:
		return "postgres", path.Join("migrations", "postgres"), nil
	case DriverSQLite:
		return "sqlite3", path.Join("migrations", "sqlite"), nil
	}
	return "", "", errors.Wrap(ErrUnsupportedDriver, driver)
}

// Open connects to the database, waits for it to answer and migrates it.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	gooseDialect, dir, err := dialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1) // sqlite serialises writers anyway
	}
	if err = ping(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	s := &Store{db: db, gooseDialect: gooseDialect, migrationsDir: dir}
	if err = s.Migrate("up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sql.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

// Migrate runs a goose command (up, down, status, version, redo, ...) against the embedded migrations.
func (s *Store) Migrate(command string, args ...string) error {
	if err := goose.SetDialect(s.gooseDialect); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	if err := gooseRunFunc(command, s.db.DB, migrationsFS, s.migrationsDir, args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	if err := s.db.GetContext(ctx, &blob, s.db.Rebind(getQuery), key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	return blob, nil
}

func (s *Store) Set(ctx context.Context, key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(setQuery), key, blob, time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteQuery), key); err != nil {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}
