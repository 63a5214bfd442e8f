package ports

import "context"

// Tx is an opaque transaction handle for repositories/adapters.
// Infrastructure controls the concrete type (for example, *gorm.DB).
type Tx interface{}

// TxScope names the store a transaction belongs to. The central store and
// every server store use distinct scopes so a transaction opened on one
// store is never picked up by a repository of another.
type TxScope string

const CentralScope TxScope = "central"

// ServerScope returns the transaction scope of a server store.
func ServerScope(serverID string) TxScope {
	return TxScope("server:" + serverID)
}

// UnitOfWork defines a transaction boundary on a single store.
//
// This is intentionally callback-style: returning an error causes rollback,
// returning nil causes commit.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct {
	scope TxScope
}

// WithTxContext stores a transaction handle for scope in context.
func WithTxContext(ctx context.Context, scope TxScope, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{scope: scope}, tx)
}

// TxFromContext reads the transaction handle of scope from context.
func TxFromContext(ctx context.Context, scope TxScope) Tx {
	return ctx.Value(txKey{scope: scope})
}
