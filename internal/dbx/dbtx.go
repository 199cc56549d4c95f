// Package dbx holds the small database plumbing the repositories build on:
// a DBTX interface satisfied by both *sql.DB and *sql.Tx, and WithTx for
// running multi-step flows (register, login) atomically.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories need. Passing *sql.DB
// runs statements on the pool; passing *sql.Tx runs them inside an open
// transaction. Repositories never care which one they got.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics (the panic is rethrown after rollback).
//
// Services use it to keep compound session flows atomic:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if _, err := repos.RefreshTokens(tx).RevokeAllForUser(ctx, userID); err != nil {
//	        return err
//	    }
//	    return repos.RefreshTokens(tx).Create(ctx, userID, token, expiresAt)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
