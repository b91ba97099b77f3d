package vaultswap

import (
	"fmt"

	"github.com/iov-one/vaultswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverOrError builds the DeliverTx response from the handler output.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response from the handler output.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverResult is what a handler returns on success. Failures are errors.
type DeliverResult struct {
	// Data is the address created by the message: the escrow on
	// escrow/make, the mint on token/create_mint, the vault on
	// whitelist/init_vault.
	Data []byte
	Log  string
	// Tags are indexed by tendermint, see AddTag.
	Tags []common.KVPair
	// GasUsed is reported as is. Nothing charges for gas.
	GasUsed int64
}

// ToABCI returns the tendermint form.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// AddTag appends a tag. Clients search with them, for example all
// transactions of one escrow with escrow=<address>.
func (d *DeliverResult) AddTag(key, value []byte) {
	d.Tags = append(d.Tags, common.KVPair{Key: key, Value: value})
}

// CheckResult is what a handler returns when a transaction may enter the
// mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the fixed cost of the message, reported to tendermint
	// as GasWanted.
	GasAllocated int64
	// GasPayment stays zero: there are no fees.
	GasPayment int64
}

// NewCheck returns a result with the message cost and a log line.
func NewCheck(gasAllocated int64, log string) CheckResult {
	return CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// ToABCI returns the tendermint form.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError maps err to its registered ABCI code, so ErrLocked from a
// premature escrow/take reaches the client as code 1000. Unregistered errors
// are redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError is DeliverTxError for CheckTx.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
