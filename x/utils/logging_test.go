package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := vaultswap.WithLogger(context.Background(), logger)
	tx := &vaultswaptest.Tx{Msg: &vaultswaptest.Msg{RoutePath: "escrow/refund"}}

	ok := vaultswaptest.Decorate(&vaultswaptest.Handler{
		DeliverResult: vaultswap.DeliverResult{Log: "refunded"},
	}, NewLogging())
	_, err := ok.Deliver(ctx, store.MemStore(), tx)
	assert.Nil(t, err)

	failing := vaultswaptest.Decorate(&vaultswaptest.Handler{
		DeliverErr: errors.ErrUnauthorized,
	}, NewLogging())
	_, err = failing.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	out := buf.String()
	for _, want := range []string{"refunded", "path=escrow/refund", "unauthorized"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output does not contain %q:\n%s", want, out)
		}
	}
}
