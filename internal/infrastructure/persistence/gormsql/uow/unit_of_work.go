package uow

import (
	"context"

	"gorm.io/gorm"

	"modpanel/internal/ports"
)

// UnitOfWork implements ports.UnitOfWork with gorm for a single store.
type UnitOfWork struct {
	db    *gorm.DB
	scope ports.TxScope
}

func NewUnitOfWork(db *gorm.DB, scope ports.TxScope) *UnitOfWork {
	return &UnitOfWork{db: db, scope: scope}
}

// WithTx joins a transaction of the same scope already present in ctx;
// otherwise it opens one and commits when fn returns nil.
func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ports.TxFromContext(ctx, u.scope).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.WithTxContext(ctx, u.scope, tx))
	})
}
