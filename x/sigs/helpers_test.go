package sigs

import (
	"github.com/iov-one/vaultswap"
)

// StdTx is a minimal signed transaction used by the tests.
type StdTx struct {
	vaultswap.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Payload: payload}
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []vaultswap.Condition
}

var _ vaultswap.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &vaultswap.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &vaultswap.DeliverResult{}, nil
}
