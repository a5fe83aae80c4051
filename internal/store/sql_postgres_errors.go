package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification indicates whether a failed database operation may be
// retried.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates a transient failure such as a lost connection, a
	// deadlock or a busy database file.
	Retryable
)

// ErrorClassificator inspects dialect-specific driver errors.
type ErrorClassificator interface {
	// Classify reports whether err is worth retrying.
	Classify(err error) ErrorClassification
	// UniqueViolation reports the column of a violated unique constraint.
	UniqueViolation(err error) (column string, ok bool)
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL
// using pgconn error codes.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// UniqueViolation implements [ErrorClassificator]. The column is derived
// from the default constraint name "<table>_<column>_key".
func (c *PostgresErrorClassifier) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	column := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if pgErr.TableName != "" {
		column = strings.TrimPrefix(column, pgErr.TableName+"_")
	} else if _, after, ok := strings.Cut(column, "_"); ok {
		column = after
	}

	return column, true
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Retryable codes: class 08 connection exceptions, class 40 transaction
// rollbacks (serialization failure, deadlock) and 57P03 cannot_connect_now.
// Everything else is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable

	case pgerrcode.CannotConnectNow: // 57P03
		return Retryable
	}

	return NonRetryable
}
