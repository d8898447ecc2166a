package repository

import (
	"context"

	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key carrying the active transaction handle
const txKey ctxKey = "gorm_tx"

// WithTx stores a transaction handle in the context so repositories join it
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// dbFromContext returns the transaction handle from the context, or the
// fallback connection when no transaction is active.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given connection
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// Do runs fn inside a transaction and rolls back on any error. When the
// context already carries a transaction, gorm nests via savepoint, so callers
// can compose transactional services.
func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFromContext(ctx, m.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
