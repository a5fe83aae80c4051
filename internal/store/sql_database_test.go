package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/migrations"
)

func TestNewDB_PlaceholderFormatFollowsDialect(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	tests := []struct {
		name       string
		dialect    string
		classifier ErrorClassificator
		want       string
		notWant    string
	}{
		{name: "postgres", dialect: migrations.DialectPostgres, classifier: NewPostgresErrorClassifier(), want: "id = $1", notWant: "?"},
		{name: "sqlite", dialect: migrations.DialectSQLite, classifier: NewSQLiteErrorClassifier(), want: "id = ?", notWant: "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newDB(conn, tt.dialect, tt.classifier, logger.Nop())
			assert.Equal(t, tt.dialect, db.Dialect())

			query, args, err := buildExistsQuery(db.builder, "projects", 5)
			require.NoError(t, err)

			assert.Contains(t, query, tt.want)
			assert.NotContains(t, query, tt.notWant)
			assert.Equal(t, []any{int64(5)}, args)
		})
	}
}
