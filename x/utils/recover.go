package utils

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// Recovery turns a panic further down the stack into ErrPanic. The
// savepoint cache below it is never written, so the transaction fails
// without writes and the node keeps running.
type Recovery struct{}

var _ vaultswap.Decorator = Recovery{}

// NewRecovery returns the decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check implements vaultswap.Decorator.
func (r Recovery) Check(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Checker) (_ *vaultswap.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver implements vaultswap.Decorator.
func (r Recovery) Deliver(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Deliverer) (_ *vaultswap.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
