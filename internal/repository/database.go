package repository

import (
	"context"
	"errors"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrNoPrices = errors.New("no closing prices found in datasource")
)

// rowQuerier is the seam between the store and pgx, so tests can feed rows
// without a live pool.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore reads the daily close table from a Postgres database.
type PostgresStore struct {
	q    rowQuerier
	conn *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore and verifies connectivity.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &PostgresStore{q: conn, conn: conn}, nil
}

func (s *PostgresStore) Close() {
	s.conn.Close()
}
