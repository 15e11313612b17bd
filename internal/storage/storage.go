package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v4"
	_ "github.com/jackc/pgx/v4/stdlib" // Import the driver
)

// Storage holds the database handle and the items table name.
type Storage struct {
	db    *sql.DB
	table string
}

// NewStorage uses db for the items table, named prefix + "items".
func NewStorage(db *sql.DB, prefix string) *Storage {
	return &Storage{
		db:    db,
		table: pgx.Identifier{prefix + "items"}.Sanitize(),
	}
}

// Open connects to the database at url, retrying up to attempts times
// with delay between tries.
func Open(ctx context.Context, url string, attempts int, delay time.Duration, logger *log.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = log.Default()
	}
	if attempts < 1 {
		attempts = 1
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for i := 1; ; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			logger.Info("connected to database")
			return db, nil
		}
		if i >= attempts {
			break
		}
		logger.Warn("waiting for database", "attempt", i, "err", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", attempts, err)
}

// EnsureSchema creates the items table if it does not exist.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+s.table+` (
			id       BIGSERIAL,
			name     VARCHAR(255) PRIMARY KEY,
			game     VARCHAR(255),
			url      TEXT,
			img      TEXT,
			quantity INTEGER,
			price    DOUBLE PRECISION
		)`)
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}
