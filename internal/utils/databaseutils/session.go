package databaseutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

type txKey struct{}

// SQLExecutor defines the common methods implemented by both *sql.DB and
// *sql.Tx, so query helpers work the same inside and outside a transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Session runs multi-statement work inside one transaction. The context
// handed to fn carries the *sql.Tx; GetSQLExecutor picks it up.
type Session interface {
	DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error
}

type sqlSession struct {
	db *sql.DB
}

func NewSession(db *sql.DB) Session {
	return &sqlSession{db: db}
}

// DoTransactionally begins a transaction, runs fn with a context carrying
// it, and commits when fn returns nil or rolls back otherwise. A panic in
// fn rolls back and re-panics.
func (s *sqlSession) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session: failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Printf("session: failed to rollback transaction after error: %v (original error: %v)", rollbackErr, err)
			}
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				err = fmt.Errorf("session: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	err = fn(txCtx)
	return err
}

// GetSQLExecutor returns the transaction stored in the context, or the
// fallback pool when no transaction is active.
func GetSQLExecutor(ctx context.Context, fallbackDB *sql.DB) SQLExecutor {
	dbExecutor := ctx.Value(txKey{})
	if dbExecutor == nil {
		return fallbackDB
	}

	tx, ok := dbExecutor.(*sql.Tx)
	if !ok {
		panic(fmt.Sprintf("session: value in context for txKey is not a *sql.Tx, but %T", dbExecutor))
	}
	return tx
}

// DoTransactionally is the value-returning form of Session.DoTransactionally.
func DoTransactionally[T any](ctx context.Context, session Session, fn func(txCtx context.Context) (T, error)) (T, error) {
	var zero T
	var result T
	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		r, err := fn(txCtx)
		result = r
		return err
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}
