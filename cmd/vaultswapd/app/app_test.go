package vaultswapd_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	vaultswapd "github.com/iov-one/vaultswap/cmd/vaultswapd/app"
	"github.com/iov-one/vaultswap/crypto"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/escrow"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "vaultswap-test"

// signer keeps track of the sequence a key must sign with next
type signer struct {
	key crypto.PrivateKey
	seq int64
}

func newSigner() *signer {
	return &signer{key: crypto.GenPrivKeyEd25519()}
}

func (s *signer) Address() vaultswap.Address {
	return s.key.PublicKey().Address()
}

type testApp struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestApp(t *testing.T, appState interface{}) *testApp {
	t.Helper()
	abciApp, err := vaultswapd.GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)
	base, ok := abciApp.(app.BaseApp)
	require.True(t, ok, "unexpected application type %T", abciApp)

	state, err := json.Marshal(appState)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	return &testApp{t: t, app: base}
}

// sign wraps msg into a transaction signed by s
func (a *testApp) sign(s *signer, msg vaultswap.Msg) []byte {
	a.t.Helper()
	tx := &vaultswapd.Tx{Msg: msg}
	sig, err := sigs.SignTx(s.key, tx, chainID, s.seq)
	require.NoError(a.t, err)
	s.seq++
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(a.t, err)
	return bz
}

// block delivers all transactions in a new block and commits it
func (a *testApp) block(at time.Time, txs ...[]byte) []abci.ResponseDeliverTx {
	a.height++
	a.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: a.height, Time: at},
	})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = a.app.DeliverTx(tx)
	}
	a.app.EndBlock(abci.RequestEndBlock{Height: a.height})
	a.app.Commit()
	return res
}

func (a *testApp) query(path string, key []byte, dest vaultswap.Persistent) {
	a.t.Helper()
	res := a.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(a.t, uint32(0), res.Code, res.Log)
	require.NoError(a.t, app.UnmarshalOneResult(res.Value, dest))
}

func (a *testApp) balance(owner, mint vaultswap.Address) uint64 {
	a.t.Helper()
	var acc token.Account
	a.query("/accounts", token.AssociatedAddress(owner, mint), &acc)
	return acc.Amount
}

func tag(res abci.ResponseDeliverTx, key string) string {
	for _, t := range res.Tags {
		if string(t.Key) == key {
			return string(t.Value)
		}
	}
	return ""
}

func meta() *vaultswap.Metadata {
	return &vaultswap.Metadata{Schema: 1}
}

type mintOpt struct {
	Authority vaultswap.Address `json:"authority"`
	Symbol    string            `json:"symbol"`
	Decimals  uint32            `json:"decimals"`
}

type accountOpt struct {
	Owner  vaultswap.Address `json:"owner"`
	Mint   vaultswap.Address `json:"mint"`
	Amount uint64            `json:"amount"`
}

func TestEscrowLifecycle(t *testing.T) {
	maker, taker := newSigner(), newSigner()
	mintA := token.MintAddress(maker.Address(), "AAA")
	mintB := token.MintAddress(taker.Address(), "BBB")

	a := newTestApp(t, map[string]interface{}{
		"token": map[string]interface{}{
			"mints": []mintOpt{
				{Authority: maker.Address(), Symbol: "AAA", Decimals: 6},
				{Authority: taker.Address(), Symbol: "BBB", Decimals: 6},
			},
			"accounts": []accountOpt{
				{Owner: maker.Address(), Mint: mintA, Amount: 1000},
				{Owner: taker.Address(), Mint: mintB, Amount: 500},
			},
		},
		"conf": map[string]interface{}{
			"escrow": map[string]interface{}{
				"metadata":    meta(),
				"lock_period": "1h",
			},
		},
	})

	start := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	escrowAddr := escrow.Address(maker.Address(), 7)

	res := a.block(start, a.sign(maker, &escrow.MakeMsg{
		Metadata: meta(),
		Seed:     7,
		MintA:    mintA,
		MintB:    mintB,
		Deposit:  100,
		Receive:  40,
	}))
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, []byte(escrowAddr), res[0].Data)
	assert.Equal(t, "escrow/make", tag(res[0], utils.ActionKey))
	assert.Equal(t, escrowAddr.String(), tag(res[0], "escrow"))
	assert.Equal(t, uint64(900), a.balance(maker.Address(), mintA))
	assert.Equal(t, uint64(100), a.balance(escrowAddr, mintA))

	var stored escrow.Escrow
	a.query("/escrows", escrowAddr, &stored)
	assert.Equal(t, escrow.StateOpen, stored.State)
	assert.Equal(t, vaultswap.AsUnixTime(start.Add(time.Hour)), stored.LockUntil)

	take := &escrow.TakeMsg{Metadata: meta(), Escrow: escrowAddr}

	// still locked
	res = a.block(start.Add(10*time.Minute), a.sign(taker, take))
	assert.Equal(t, escrow.ErrLocked.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, uint64(100), a.balance(escrowAddr, mintA))

	res = a.block(start.Add(2*time.Hour), a.sign(taker, take))
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, "escrow/take", tag(res[0], utils.ActionKey))

	assert.Equal(t, uint64(900), a.balance(maker.Address(), mintA))
	assert.Equal(t, uint64(100), a.balance(taker.Address(), mintA))
	assert.Equal(t, uint64(40), a.balance(maker.Address(), mintB))
	assert.Equal(t, uint64(460), a.balance(taker.Address(), mintB))
	assert.Equal(t, uint64(0), a.balance(escrowAddr, mintA))

	a.query("/escrows", escrowAddr, &stored)
	assert.Equal(t, escrow.StateCompleted, stored.State)

	// a completed escrow can be neither refunded nor taken again
	res = a.block(start.Add(3*time.Hour),
		a.sign(maker, &escrow.RefundMsg{Metadata: meta(), Escrow: escrowAddr}),
		a.sign(taker, take),
	)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res[1].Code, res[1].Log)

	// the seed stays used
	res = a.block(start.Add(4*time.Hour), a.sign(maker, &escrow.MakeMsg{
		Metadata: meta(),
		Seed:     7,
		MintA:    mintA,
		MintB:    mintB,
		Deposit:  1,
		Receive:  1,
	}))
	assert.Equal(t, errors.ErrDuplicate.ABCICode(), res[0].Code, res[0].Log)
}

func TestEscrowRefund(t *testing.T) {
	maker, other := newSigner(), newSigner()
	mintA := token.MintAddress(maker.Address(), "AAA")
	mintB := token.MintAddress(maker.Address(), "BBB")

	a := newTestApp(t, map[string]interface{}{
		"token": map[string]interface{}{
			"mints": []mintOpt{
				{Authority: maker.Address(), Symbol: "AAA", Decimals: 2},
				{Authority: maker.Address(), Symbol: "BBB", Decimals: 2},
			},
			"accounts": []accountOpt{
				{Owner: maker.Address(), Mint: mintA, Amount: 50},
			},
		},
	})

	start := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	escrowAddr := escrow.Address(maker.Address(), 1)
	res := a.block(start, a.sign(maker, &escrow.MakeMsg{
		Metadata: meta(),
		Seed:     1,
		MintA:    mintA,
		MintB:    mintB,
		Deposit:  50,
		Receive:  5,
	}))
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, uint64(0), a.balance(maker.Address(), mintA))

	refund := &escrow.RefundMsg{Metadata: meta(), Escrow: escrowAddr}

	// refunds ignore the lock, but only the maker may ask for one
	res = a.block(start.Add(time.Minute), a.sign(other, refund), a.sign(maker, refund))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[0].Code, res[0].Log)
	require.Equal(t, uint32(0), res[1].Code, res[1].Log)
	assert.Equal(t, "escrow/refund", tag(res[1], utils.ActionKey))

	assert.Equal(t, uint64(50), a.balance(maker.Address(), mintA))
	assert.Equal(t, uint64(0), a.balance(escrowAddr, mintA))

	var stored escrow.Escrow
	a.query("/escrows", escrowAddr, &stored)
	assert.Equal(t, escrow.StateRefunded, stored.State)
}

func TestRejectedTransactions(t *testing.T) {
	a := newTestApp(t, map[string]interface{}{})
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	unsigned, err := (&vaultswapd.Tx{Msg: &escrow.RefundMsg{Metadata: meta(), Escrow: escrow.Address(newSigner().Address(), 1)}}).Marshal()
	require.NoError(t, err)

	res := a.block(now, []byte("garbage"), unsigned)
	assert.Equal(t, errors.ErrInvalidInput.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[1].Code, res[1].Log)

	check := a.app.CheckTx(unsigned)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), check.Code, check.Log)
}
