package databaseutils

import (
	"context"
	"database/sql"
	"time"
)

// SQLTemplate applies the configured per-query timeout and routes queries
// through the transaction in the context when one is active.
type SQLTemplate struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewSQLTemplate(db *sql.DB, timeout time.Duration) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
	}
}

func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil even when empty so list envelopes serialise as [].
	results := make([]T, 0)
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery runs a query expected to yield at most one row and
// reports sql.ErrNoRows when it yields none.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T

	results, err := ExecuteQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, sql.ErrNoRows
	}

	return results[0], nil
}

// ExecuteUpdate runs a statement and returns the number of affected rows.
func ExecuteUpdate(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
