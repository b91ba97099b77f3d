package app

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicHandler fails every call with a panic
type panicHandler struct{}

func (panicHandler) Check(vaultswap.Context, vaultswap.KVStore, vaultswap.Tx) (*vaultswap.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(vaultswap.Context, vaultswap.KVStore, vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	c1 := &vaultswaptest.Decorator{}
	c2 := &vaultswaptest.Decorator{}
	var missing *vaultswaptest.Decorator
	h := &vaultswaptest.Handler{}

	stack := ChainDecorators(
		c1,
		nil,
		utils.NewRecovery(),
		missing,
		c2,
	).WithHandler(h)

	ctx := context.Background()
	tx := &vaultswaptest.Tx{Msg: &vaultswaptest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, nil, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, tx)
	require.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainRecovery(t *testing.T) {
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(panicHandler{})
	tx := &vaultswaptest.Tx{Msg: &vaultswaptest.Msg{RoutePath: "test/panic"}}

	_, err := stack.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(context.Background(), nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
}
