package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/haguru/booknest/config"
	"github.com/haguru/booknest/internal/interfaces"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second
)

// PostgresDatabaseClient wraps the database/sql pool for the PostgreSQL backend.
// Unlike the Mongo client it exposes the pool directly: the repository speaks
// SQL so atomic set semantics can live in single statements.
type PostgresDatabaseClient struct {
	db              *sql.DB
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	logger          interfaces.Logger
}

// NewPostgresDatabaseClient creates an unconnected client with pool settings
// from configuration, falling back to package defaults for zero values.
func NewPostgresDatabaseClient(cfg *config.PostgresConfig, logger interfaces.Logger) *PostgresDatabaseClient {
	client := &PostgresDatabaseClient{
		maxOpenConns:    cfg.Options.MaxOpenConns,
		maxIdleConns:    cfg.Options.MaxIdleConns,
		connMaxLifetime: cfg.Options.ConnMaxLifetime,
		logger:          logger,
	}

	if client.maxOpenConns <= 0 {
		client.maxOpenConns = DefaultMaxOpenConns
	}
	if client.maxIdleConns <= 0 {
		client.maxIdleConns = DefaultMaxIdleConns
	}
	if client.connMaxLifetime <= 0 {
		client.connMaxLifetime = DefaultConnMaxLifetime
	}

	return client
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	var err error
	p.db, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	p.db.SetMaxOpenConns(p.maxOpenConns)
	p.db.SetMaxIdleConns(p.maxIdleConns)
	p.db.SetConnMaxLifetime(p.connMaxLifetime)

	if err := p.Ping(ctx); err != nil {
		return err
	}
	p.logger.Info("Connected to PostgreSQL server")
	return nil
}

// Disconnect closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Disconnect(ctx context.Context) error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Ping verifies the database connection health.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected")
	}
	return p.db.PingContext(ctx)
}

// DB returns the underlying connection pool for repository queries.
func (p *PostgresDatabaseClient) DB() *sql.DB {
	return p.db
}

// EnsureSchema executes the given DDL statements in order.
func (p *PostgresDatabaseClient) EnsureSchema(ctx context.Context, statements ...string) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected")
	}
	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
