package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/kalakar-academy/academy-api/pkg/config"
)

// Pool is a lazily-connected PostgreSQL handle. The first Acquire dials
// the database; later calls reuse the pooled connection until Close.
// Handlers keep serving (and reporting health) even when the database is
// down at boot.
type Pool struct {
	mu   sync.Mutex
	db   *sqlx.DB
	open func() (*sqlx.DB, error)
}

// NewPool builds a pool around the configured DSN without connecting.
func NewPool(cfg config.DatabaseConfig) *Pool {
	return &Pool{open: func() (*sqlx.DB, error) { return connect(cfg) }}
}

// NewPoolWithDB wraps an existing handle, used by tests to inject sqlmock.
func NewPoolWithDB(db *sqlx.DB) *Pool {
	return &Pool{db: db, open: func() (*sqlx.DB, error) { return db, nil }}
}

// Acquire returns the shared handle, establishing it on first use.
func (p *Pool) Acquire(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open()
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	p.db = db
	return p.db, nil
}

// Connected reports whether a pooled connection currently exists.
func (p *Pool) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db != nil
}

// Close releases the pooled connection on process shutdown.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}
