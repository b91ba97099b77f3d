package whitelist

import (
	"context"

	"github.com/iov-one/vaultswap"
)

type contextKey int // local to the whitelist module

const (
	contextKeyDeposit contextKey = iota
)

// withDeposit marks the context as running a deposit into the vault of the
// given admin. Only the deposit handler sets it.
func withDeposit(ctx vaultswap.Context, admin vaultswap.Address) vaultswap.Context {
	return context.WithValue(ctx, contextKeyDeposit, admin)
}

// depositAdmin returns the admin set by withDeposit, nil outside of a deposit.
func depositAdmin(ctx vaultswap.Context) vaultswap.Address {
	val, _ := ctx.Value(contextKeyDeposit).(vaultswap.Address)
	return val
}
