package vaultswaptest

import "github.com/iov-one/vaultswap"

// Handler is a mock implementation of the vaultswap.Handler interface.
//
// Each method call is counted. Set CheckErr or DeliverErr to force an error
// response from the corresponding method.
type Handler struct {
	checkCall   int
	CheckResult vaultswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vaultswap.DeliverResult
	DeliverErr    error

	// OnDeliver if set is called with the store before the result is
	// returned. Use it to write to the store from inside a decorated call.
	OnDeliver func(db vaultswap.KVStore)
}

var _ vaultswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		h.OnDeliver(db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
