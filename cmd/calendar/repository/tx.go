package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{
		db: db,
	}
}

// WithLock runs fn in a transaction that holds a transaction-scoped advisory
// lock on key. Repositories called with the ctx passed to fn join that
// transaction.
func (r *TxRunner) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {

	return r.db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
			if err != nil {
				return err
			}

			return fn(context.WithValue(ctx, txKey{}, tx))
		})
}

func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
