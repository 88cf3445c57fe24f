package utils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction. The transaction is committed when fn
// succeeds and rolled back when it fails or panics.
func WithTx[T any](
	ctx context.Context,
	db *sql.DB,
	opts *sql.TxOptions,
	fn func(tx *sql.Tx) (T, error),
) (out T, err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return out, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)
			panic(p)
		}
		if err != nil {
			rollback(tx)
		}
	}()

	out, err = fn(tx)
	if err != nil {
		return out, err
	}
	if err = tx.Commit(); err != nil {
		return out, fmt.Errorf("commit transaction: %w", err)
	}
	return out, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		Logger.WithError(err).Error("Transaction rollback failed")
	}
}
