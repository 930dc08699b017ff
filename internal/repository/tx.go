package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx,
// so a repository can run standalone or join a caller's transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// withTx executes fn within a new transaction if the repository was created
// with a pool, or reuses the existing transaction if it was created with one.
func withTx[T any](ctx context.Context, dbtx DBTX, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	// Check if we're already in a transaction by trying to cast to pgx.Tx
	if tx, ok := dbtx.(pgx.Tx); ok {
		// Already in a transaction, just use it
		return fn(tx)
	}

	// Must be a pool, create a new transaction
	pool, ok := dbtx.(*pgxpool.Pool)
	if !ok {
		return zero, fmt.Errorf("dbtx is neither pgx.Tx nor *pgxpool.Pool: %T", dbtx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, err
	}

	// Ensure proper rollback handling
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	// Execute the function within the transaction
	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	// Commit the transaction
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}

	return result, nil
}
