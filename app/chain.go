package app

import (
	"reflect"

	"github.com/iov-one/vaultswap"
)

// Decorators is an ordered list of decorators waiting for the final
// handler.
type Decorators struct {
	chain []vaultswap.Decorator
}

/*
ChainDecorators builds the stack every transaction goes through. The first
decorator runs first. vaultswapd uses

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    utils.NewActionTagger(),
    utils.NewSavepoint().OnCheck(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(router)

so a failing escrow/take leaves no write behind except the signer sequence.
Nil decorators are skipped.
*/
func ChainDecorators(chain ...vaultswap.Decorator) Decorators {
	chain = cutoffNil(chain)
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy with the decorators appended.
func (d Decorators) Chain(chain ...vaultswap.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(d.chain, chain...)
	return Decorators{newChain}
}

// cutoffNil drops nil interfaces and typed nil pointers, in place.
func cutoffNil(ds []vaultswap.Decorator) []vaultswap.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler closes the chain over h, usually the message router.
func (d Decorators) WithHandler(h vaultswap.Handler) vaultswap.Handler {
	// wrap from the inside out
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step is one decorator bound to the rest of the stack.
type step struct {
	d    vaultswap.Decorator
	next vaultswap.Handler
}

var _ vaultswap.Handler = step{}

// Check implements vaultswap.Handler.
func (s step) Check(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver implements vaultswap.Handler.
func (s step) Deliver(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
