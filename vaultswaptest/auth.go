/*
Package vaultswaptest provides test doubles for the interfaces declared in the
vaultswap package: authenticators, transactions, messages, handlers and
decorators that count their calls.
*/
package vaultswaptest

import (
	"context"
	"fmt"

	"github.com/iov-one/vaultswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer vaultswap.Condition

	// Signers represents an authentication of multiple signers.
	Signers []vaultswap.Condition
}

func (a *Auth) GetConditions(vaultswap.Context) []vaultswap.Condition {
	if a.Signer != nil {
		return append([]vaultswap.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx vaultswap.Context, permissions ...vaultswap.Condition) vaultswap.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx vaultswap.Context) []vaultswap.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]vaultswap.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []vaultswap.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
