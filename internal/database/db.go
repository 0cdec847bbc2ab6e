package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connection pool settings
const (
	maxOpenConns    = 10
	maxIdleConns    = 2
	connMaxLifetime = 5 * time.Minute
)

// DB wraps the sqlx connection pool used by the Postgres repositories
type DB struct {
	*sqlx.DB
}

// Connect opens a Postgres pool and verifies it with a ping
func Connect(databaseURL string) (*DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return &DB{db}, nil
}

// Ping checks the connection
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Close releases the pool
func (db *DB) Close() error {
	return db.DB.Close()
}
