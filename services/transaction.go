package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/swiss-tournament/repositories"
)

// runInTx runs fn inside a transaction on db. With a nil db, fn gets a nil
// executor and repositories fall back to their own handle.
func runInTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	if db == nil {
		return fn(nil)
	}

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

// snapshotTx gives every read in one pairing call the same view of the data.
var snapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
