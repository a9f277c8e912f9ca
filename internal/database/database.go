package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"handcrafted-haven/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service owns the process-wide connection pool
type Service interface {
	// DB returns the underlying pool shared by all repositories
	DB() *sql.DB
	// Health pings the database and reports pool statistics
	Health(ctx context.Context) map[string]string
	// Close releases every pooled connection
	Close() error
}

type service struct {
	db *sql.DB
}

// DSN builds a postgres connection URL from the database configuration
func DSN(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	q.Set("search_path", cfg.Schema)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// New opens the pool and verifies connectivity
func New(ctx context.Context, cfg config.DatabaseConfig) (Service, error) {
	db, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &service{db: db}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
