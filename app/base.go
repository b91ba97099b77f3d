/*
Package app turns a vaultswap handler stack into an ABCI application.

StoreApp owns the committed iavl state, the genesis load and the query
router. BaseApp embeds it and runs every transaction through the decorator
chain and the router, so an escrow/make or token/transfer reaches its
handler with the block context and the right cache.
*/
package app

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the full abci.Application: StoreApp for state, queries and
// blocks, plus a decoder and a handler for CheckTx and DeliverTx.
type BaseApp struct {
	*StoreApp
	decoder vaultswap.TxDecoder
	handler vaultswap.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application decoding raw transactions with decoder
// and executing them with handler. With debug set, error logs keep the
// stack trace.
func NewBaseApp(
	store *StoreApp,
	decoder vaultswap.TxDecoder,
	handler vaultswap.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction against the deliver cache. Writes are
// kept until Commit.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return vaultswap.DeliverTxError(err, b.debug)
	}

	ctx := vaultswap.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", vaultswap.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return vaultswap.DeliverOrError(res, err, b.debug)
}

// CheckTx validates the transaction against the check cache, which is
// dropped on Commit.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return vaultswap.CheckTxError(err, b.debug)
	}

	ctx := vaultswap.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", vaultswap.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return vaultswap.CheckOrError(res, err, b.debug)
}

// loadTx decodes raw bytes. A decoder panic on malformed input becomes an
// error.
func (b BaseApp) loadTx(txBytes []byte) (tx vaultswap.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
