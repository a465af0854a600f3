package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	getSQL = `SELECT value FROM storefront_kv WHERE name = $1`
	setSQL = `INSERT INTO storefront_kv (name, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// DB is the subset of a pgx pool used by the store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements repository.Store on the storefront_kv table.
type Store struct {
	db     DB
	tracer database.QueryTracer
}

// New creates a Postgres-backed store.
func New(db DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		tracer: database.QueryTracer{System: "postgresql", Logger: logger},
	}
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db database.Migrator, logger *slog.Logger) error {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	return database.RunMigrations(ctx, db, sub, logger)
}

// Get implements repository.Store.
func (s *Store) Get(ctx context.Context, key string) (value string, err error) {
	ctx, end := s.tracer.Start(ctx, "kv.get", getSQL)
	defer func() { end(err) }()

	if err := s.db.QueryRow(ctx, getSQL, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("key", key)
		}
		return "", fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

// Set implements repository.Store.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := s.tracer.Start(ctx, "kv.set", setSQL)
	defer func() { end(err) }()

	if _, err := s.db.Exec(ctx, setSQL, key, value); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
