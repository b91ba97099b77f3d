package vaultswap

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/vaultswap/vaultswaptest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	_, ok := GetHeight(bg)
	assert.Equal(t, false, ok)

	ctx := WithHeight(bg, 42)
	h, ok := GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(42), h)
	assert.Panics(t, func() { WithHeight(ctx, 43) })

	ctx = WithChainID(ctx, "vaultswap-test")
	assert.Equal(t, "vaultswap-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "other-chain") })
	assert.Panics(t, func() { WithChainID(bg, "no") })
	assert.Panics(t, func() { GetChainID(bg) })

	header := abci.Header{Height: 42, ChainID: "vaultswap-test"}
	ctx = WithHeader(ctx, header)
	got, ok := GetHeader(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, header, got)

	assert.Equal(t, DefaultLogger, GetLogger(bg))
	logger := log.NewNopLogger()
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)

	blockTime, ok := BlockTime(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, AsUnixTime(now), AsUnixTime(blockTime))

	assert.Equal(t, true, IsExpired(ctx, AsUnixTime(now)))
	assert.Equal(t, true, IsExpired(ctx, AsUnixTime(now).Add(-time.Second)))
	assert.Equal(t, false, IsExpired(ctx, AsUnixTime(now).Add(time.Second)))

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })

	_, ok = BlockTime(WithBlockTime(context.Background(), time.Time{}))
	assert.Equal(t, false, ok)
}
