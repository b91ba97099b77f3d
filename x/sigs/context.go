package sigs

import (
	"context"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx vaultswap.Context, signers []vaultswap.Condition) vaultswap.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reports the conditions of verified signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx vaultswap.Context) []vaultswap.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]vaultswap.Condition)
	return val
}

// HasAddress returns true if the given address signed the transaction.
func (a Authenticate) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
