package escrow

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	// pay escrow cost up-front
	makeEscrowCost   int64 = 300
	takeEscrowCost   int64 = 100
	refundEscrowCost int64 = 0

	tagEscrow = "escrow"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, ctrl token.Controller) {
	bucket := NewBucket()
	r.Handle(pathMakeMsg, MakeHandler{auth, bucket, ctrl})
	r.Handle(pathTakeMsg, TakeHandler{auth, bucket, ctrl})
	r.Handle(pathRefundMsg, RefundHandler{auth, bucket, ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// MakeHandler opens an escrow and funds its vault.
type MakeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	tokens token.Controller
}

var _ vaultswap.Handler = MakeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MakeHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver stores the escrow and moves the deposit from the maker into the
// vault. The escrow address is returned as data.
func (h MakeHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, maker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	now, ok := vaultswap.BlockTime(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block time not present in context")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	escrow := &Escrow{
		Metadata:  &vaultswap.Metadata{Schema: 1},
		Seed:      msg.Seed,
		Maker:     maker,
		MintA:     msg.MintA,
		MintB:     msg.MintB,
		Receive:   msg.Receive,
		Deposit:   msg.Deposit,
		LockUntil: vaultswap.AsUnixTime(now).Add(conf.LockPeriod.Duration()),
	}
	addr := escrow.Address()

	// the vault must be new, tokens sent to the escrow address earlier would
	// be released with the deposit
	vault, err := h.tokens.CreateAccount(db, addr, msg.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create vault")
	}
	escrow.Vault = vault
	escrow.State = StateOpen
	if err := h.bucket.Save(db, NewEscrow(escrow)); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	mintA, err := h.tokens.Mint(db, msg.MintA)
	if err != nil {
		return nil, err
	}
	err = h.tokens.TransferChecked(ctx, db, msg.MintA, maker, addr, msg.Deposit, mintA.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	res := &vaultswap.DeliverResult{Data: addr}
	res.AddTag([]byte(tagEscrow), []byte(addr.String()))
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h MakeHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*MakeMsg, vaultswap.Address, error) {
	var msg MakeMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}
	maker := signer.Address()

	if _, err := h.tokens.Mint(db, msg.MintA); err != nil {
		return nil, nil, errors.Wrap(err, "mint a")
	}
	if _, err := h.tokens.Mint(db, msg.MintB); err != nil {
		return nil, nil, errors.Wrap(err, "mint b")
	}
	// a tombstone blocks the seed as well
	switch exists, err := h.bucket.Has(db, Address(maker, msg.Seed)); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "cannot check escrow")
	case exists:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow with seed %d", msg.Seed)
	}
	switch _, err := h.tokens.Balance(db, token.AssociatedAddress(Address(maker, msg.Seed), msg.MintA)); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "vault of seed %d already exists", msg.Seed)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, errors.Wrap(err, "cannot check vault")
	}
	return &msg, maker, nil
}

// TakeHandler completes an escrow: the taker pays the maker and receives the
// vault content.
type TakeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	tokens token.Controller
}

var _ vaultswap.Handler = TakeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TakeHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver swaps the tokens and closes the escrow.
func (h TakeHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	escrow, taker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr := escrow.Address()

	mintB, err := h.tokens.Mint(db, escrow.MintB)
	if err != nil {
		return nil, err
	}
	err = h.tokens.TransferChecked(ctx, db, escrow.MintB, taker, escrow.Maker, escrow.Receive, mintB.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}
	if err := release(ctx, db, h.tokens, escrow, taker); err != nil {
		return nil, err
	}

	escrow.Close(StateCompleted)
	if err := h.bucket.Save(db, NewEscrow(escrow)); err != nil {
		return nil, errors.Wrap(err, "cannot close escrow")
	}

	res := &vaultswap.DeliverResult{}
	res.AddTag([]byte(tagEscrow), []byte(addr.String()))
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h TakeHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*Escrow, vaultswap.Address, error) {
	var msg TakeMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature required")
	}
	escrow, err := h.bucket.GetOpen(db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !vaultswap.IsExpired(ctx, escrow.LockUntil) {
		return nil, nil, errors.Wrapf(ErrLocked, "locked until %s", escrow.LockUntil)
	}
	return escrow, signer.Address(), nil
}

// RefundHandler returns the deposit to the maker and closes the escrow.
type RefundHandler struct {
	auth   x.Authenticator
	bucket Bucket
	tokens token.Controller
}

var _ vaultswap.Handler = RefundHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefundHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver moves the vault content back to the maker.
func (h RefundHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr := escrow.Address()

	if err := release(ctx, db, h.tokens, escrow, escrow.Maker); err != nil {
		return nil, err
	}

	escrow.Close(StateRefunded)
	if err := h.bucket.Save(db, NewEscrow(escrow)); err != nil {
		return nil, errors.Wrap(err, "cannot close escrow")
	}

	res := &vaultswap.DeliverResult{}
	res.AddTag([]byte(tagEscrow), []byte(addr.String()))
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
// The lock period does not apply to refunds.
func (h RefundHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*Escrow, error) {
	var msg RefundMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetOpen(db, msg.Escrow)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the maker can refund")
	}
	return escrow, nil
}

// release moves the whole vault balance to the recipient and closes the
// vault.
func release(ctx vaultswap.Context, db vaultswap.KVStore, tokens token.Controller, escrow *Escrow, recipient vaultswap.Address) error {
	balance, err := tokens.Balance(db, escrow.Vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if balance > 0 {
		mintA, err := tokens.Mint(db, escrow.MintA)
		if err != nil {
			return err
		}
		err = tokens.TransferChecked(ctx, db, escrow.MintA, escrow.Address(), recipient, balance, mintA.Decimals)
		if err != nil {
			return errors.Wrap(err, "empty vault")
		}
	}
	if err := tokens.CloseAccount(db, escrow.Vault); err != nil {
		return errors.Wrap(err, "close vault")
	}
	return nil
}
