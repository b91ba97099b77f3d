package vaultswaptest

import "github.com/iov-one/vaultswap"

// Decorator counts the calls passing through it. A set CheckErr or
// DeliverErr stops the call before the next handler, which is how chain
// tests check that nothing below a failed decorator runs.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ vaultswap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Checker) (*vaultswap.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Deliverer) (*vaultswap.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount counts Check calls, failed ones included.
func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// CallCount is the sum of both counters.
func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps h in d without building a whole chain.
func Decorate(h vaultswap.Handler, d vaultswap.Decorator) vaultswap.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn vaultswap.Handler
	dc vaultswap.Decorator
}

var _ vaultswap.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
