package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/migrations"
	"github.com/Masterminds/squirrel"
)

// DB is a database handle bound to one SQL dialect. Queries are built with
// the dialect's placeholder format and driver errors are classified by the
// dialect's [ErrorClassificator].
type DB struct {
	*sql.DB
	dialect            string
	builder            squirrel.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if dialect == migrations.DialectPostgres {
		format = squirrel.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            squirrel.StatementBuilder.PlaceholderFormat(format),
		errorClassificator: classifier,
		logger:             log,
	}
}

// execRetryOnce runs an idempotent statement and repeats it once when the
// dialect classifies the first failure as [Retryable].
func (db *DB) execRetryOnce(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err == nil || db.errorClassificator.Classify(err) != Retryable {
		return res, err
	}

	db.logger.Warn().Err(err).Msg("retrying statement after transient failure")
	return db.ExecContext(ctx, query, args...)
}

// Dialect returns the driver name the handle was opened with.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// NewConnect opens the database described by cfg. DSNs starting with
// postgres:// or postgresql:// select PostgreSQL; anything else is treated
// as a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// InTx runs fn inside a transaction, committing when fn returns nil.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
