package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"taskorganizer/config"
	"taskorganizer/shared/failure"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second

	hintUnreachable = "Database is unavailable. Check that DATABASE_URL (or POSTGRES_URL) points to a reachable PostgreSQL instance."
)

// Connection is the process-wide handle to the store. DB is nil when no
// connection string is configured; every store call then fails on its own.
type Connection struct {
	DB *sqlx.DB
}

// New opens the pool and pings it best-effort. It never fails: an unreachable
// database leaves the pool in place so later requests can connect once it is up.
func New(config *config.Config) *Connection {
	url := config.DatabaseURL()
	if url == "" {
		log.Warn().Msg("DATABASE_URL is not set, store endpoints will be unavailable")

		return &Connection{}
	}

	pg := config.DB.Postgres

	db, err := Open(url, pg.MaxOpenConns, pg.MaxIdleConns)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database pool, store endpoints will be unavailable")

		return &Connection{}
	}

	conn := &Connection{DB: db}

	for retry := range max(pg.MaxRetry, 1) {
		err = conn.Ping(context.Background())
		if err == nil {
			log.Info().Msg("Connected to database")

			return conn
		}

		log.
			Warn().
			Err(err).
			Int("attempt", retry+1).
			Msg("Failed connecting to database")

		if retry+1 < pg.MaxRetry {
			time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
		}
	}

	log.Warn().Msg("Continuing without a database connection, store endpoints will fail until it is reachable")

	return conn
}

// Open creates a pool for the given connection string without contacting the server.
func Open(url string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, NormalizeURL(url))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	return db, nil
}

// NormalizeURL accepts SQLAlchemy style URLs such as postgresql+psycopg://
// and returns the plain scheme lib/pq understands.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)

	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}

	if base, _, hasDriver := strings.Cut(scheme, "+"); hasDriver {
		scheme = base
	}

	return scheme + "://" + rest
}

// Reader returns the pool for implicit-read queries.
func (c *Connection) Reader() (*sqlx.DB, error) {
	if c == nil || c.DB == nil {
		return nil, failure.ErrStoreNotConfigured
	}

	return c.DB, nil
}

// Ping verifies the store can be reached.
func (c *Connection) Ping(ctx context.Context) error {
	db, err := c.Reader()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return Classify(db.PingContext(ctx))
}

// WithTx runs fn inside a single transaction. The transaction commits only when
// fn returns nil and is rolled back on every other exit path, panics included.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	db, err := c.Reader()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Classify(fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return Classify(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Close releases the pool.
func (c *Connection) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}

	return c.DB.Close() //nolint:wrapcheck
}

// Classify marks connection-level failures as StoreUnavailable and passes
// every other error through unchanged. Already classified errors are returned as is.
func Classify(err error) error {
	if err == nil || !unavailable(err) {
		return err
	}

	if _, ok := failure.As(err); ok {
		return err
	}

	return fmt.Errorf("%w: %w", failure.StoreUnavailable(hintUnreachable), err)
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "28", "3D":
			return true
		}

		switch pqErr.Code {
		case "53300", "57P01", "57P02", "57P03":
			return true
		}

		return false
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
