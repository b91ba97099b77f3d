package app

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	h := &vaultswaptest.Handler{}
	r.Handle("escrow/make", h)

	assert.Panics(t, func() { r.Handle("escrow/make", h) }, "duplicate path")
	assert.Panics(t, func() { r.Handle("escrow make", h) }, "invalid path")

	ctx := context.Background()
	tx := &vaultswaptest.Tx{Msg: &vaultswaptest.Msg{RoutePath: "escrow/make"}}
	_, err := r.Check(ctx, nil, tx)
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx)
	require.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())

	unknown := &vaultswaptest.Tx{Msg: &vaultswaptest.Msg{RoutePath: "escrow/burn"}}
	_, err = r.Check(ctx, nil, unknown)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, unknown)
	assert.True(t, errors.ErrNotFound.Is(err))

	broken := &vaultswaptest.Tx{Err: errors.ErrInvalidMsg}
	_, err = r.Deliver(ctx, nil, broken)
	assert.True(t, errors.ErrInvalidMsg.Is(err))
}
