package domain

import "context"

// TxManager runs fn as one atomic unit against the store. Repository calls made with the ctx
// passed to fn join the transaction. Implementations must make check-then-write sequences inside
// fn safe against concurrent callers.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
