package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x"
)

const (
	createMintCost    int64 = 500
	createAccountCost int64 = 100
	mintToCost        int64 = 50
	transferCost      int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, ctrl BaseController) {
	r.Handle(pathCreateMintMsg, CreateMintHandler{auth, ctrl})
	r.Handle(pathCreateAccountMsg, CreateAccountHandler{auth, ctrl})
	r.Handle(pathMintToMsg, MintToHandler{auth, ctrl})
	r.Handle(pathTransferMsg, TransferHandler{auth, ctrl})
}

// signer returns the address of the main signer or ErrUnauthorized.
func signer(ctx vaultswap.Context, auth x.Authenticator) (vaultswap.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return cond.Address(), nil
}

// CreateMintHandler creates a mint owned by the signer.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ vaultswap.Handler = CreateMintHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateMintHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: createMintCost}, nil
}

// Deliver stores the mint and returns its address.
func (h CreateMintHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.ctrl.CreateMint(db, authority, msg.Symbol, msg.Decimals, msg.TransferHook)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{Data: key}, nil
}

func (h CreateMintHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*CreateMintMsg, vaultswap.Address, error) {
	var msg CreateMintMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	authority, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, authority, nil
}

// CreateAccountHandler creates an associated token account.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ vaultswap.Handler = CreateAccountHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateAccountHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: createAccountCost}, nil
}

// Deliver creates the account and returns its address.
func (h CreateAccountHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.ctrl.CreateAccount(db, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{Data: key}, nil
}

func (h CreateAccountHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*CreateAccountMsg, error) {
	var msg CreateAccountMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := signer(ctx, h.auth); err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintToHandler issues new tokens. Only the mint authority is allowed.
type MintToHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ vaultswap.Handler = MintToHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MintToHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: mintToCost}, nil
}

// Deliver issues the tokens into the associated account of the owner.
func (h MintToHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MintTo(db, msg.Mint, msg.Owner, msg.Amount); err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{Data: AssociatedAddress(msg.Owner, msg.Mint)}, nil
}

func (h MintToHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	mint, err := h.ctrl.Mint(db, msg.Mint)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature required")
	}
	return &msg, nil
}

// TransferHandler moves tokens out of the account of the signer.
type TransferHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ vaultswap.Handler = TransferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TransferHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver does a checked transfer from the signer to the destination.
func (h TransferHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, from, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	err = h.ctrl.TransferChecked(ctx, db, msg.Mint, from, msg.Destination, msg.Amount, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*TransferMsg, vaultswap.Address, error) {
	var msg TransferMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	from, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, from, nil
}
