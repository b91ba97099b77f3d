package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

// Controller is the functionality other extensions need to move tokens.
//
// None of the methods check who is allowed to do the operation. Handlers
// authenticate the signer before calling it, extensions owning derived
// addresses call it directly.
type Controller interface {
	// Mint returns the mint stored under the given address.
	Mint(db vaultswap.ReadOnlyKVStore, mint vaultswap.Address) (*Mint, error)
	// Balance returns the amount held by the token account.
	Balance(db vaultswap.ReadOnlyKVStore, account vaultswap.Address) (uint64, error)
	// CreateAccount creates the associated account of owner for mint. It
	// fails with ErrDuplicate if the account exists.
	CreateAccount(db vaultswap.KVStore, owner, mint vaultswap.Address) (vaultswap.Address, error)
	// EnsureAccount returns the associated account of owner for mint,
	// creating an empty one if missing.
	EnsureAccount(db vaultswap.KVStore, owner, mint vaultswap.Address) (vaultswap.Address, error)
	// TransferChecked moves amount of mint from the associated account of
	// from to the associated account of to. Decimals must match the mint.
	TransferChecked(ctx vaultswap.Context, db vaultswap.KVStore, mint, from, to vaultswap.Address, amount uint64, decimals uint32) error
	// CloseAccount removes an empty token account.
	CloseAccount(db vaultswap.KVStore, account vaultswap.Address) error
}

// BaseController is the token Controller. It additionally implements the
// operations only the token handlers use.
type BaseController struct {
	mints    MintBucket
	accounts AccountBucket
	hooks    Hooks
}

var _ Controller = BaseController{}

// NewController returns a controller calling the given hooks on transfer.
// hooks may be nil when no mint uses a transfer hook.
func NewController(hooks Hooks) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		hooks:    hooks,
	}
}

// Mint returns the mint stored under the given address, ErrNotFound if
// there is none.
func (c BaseController) Mint(db vaultswap.ReadOnlyKVStore, mint vaultswap.Address) (*Mint, error) {
	obj, err := c.mints.Get(db, mint)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load mint")
	}
	m := AsMint(obj)
	if m == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "mint %s", mint)
	}
	return m, nil
}

// CreateMint stores a new mint with no supply. The mint address is derived
// from the authority and the symbol.
func (c BaseController) CreateMint(db vaultswap.KVStore, authority vaultswap.Address, symbol string, decimals uint32, hook string) (vaultswap.Address, error) {
	if hook != "" {
		if _, ok := c.hooks[hook]; !ok {
			return nil, errors.Wrapf(ErrUnknownHook, "%q", hook)
		}
	}
	key := MintAddress(authority, symbol)
	switch exists, err := c.mints.Has(db, key); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check mint")
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "mint %s", symbol)
	}
	mint := &Mint{
		Metadata:     &vaultswap.Metadata{Schema: 1},
		Symbol:       symbol,
		Decimals:     decimals,
		Authority:    authority,
		TransferHook: hook,
	}
	if err := c.mints.Save(db, orm.NewSimpleObj(key, mint)); err != nil {
		return nil, errors.Wrap(err, "cannot save mint")
	}
	return key, nil
}

// Balance returns the amount held by the token account, ErrNotFound if the
// account does not exist.
func (c BaseController) Balance(db vaultswap.ReadOnlyKVStore, account vaultswap.Address) (uint64, error) {
	acc, err := c.account(db, account)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// Account returns the token account stored under the given address.
func (c BaseController) Account(db vaultswap.ReadOnlyKVStore, account vaultswap.Address) (*Account, error) {
	return c.account(db, account)
}

func (c BaseController) account(db vaultswap.ReadOnlyKVStore, key vaultswap.Address) (*Account, error) {
	obj, err := c.accounts.Get(db, key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load account")
	}
	acc := AsAccount(obj)
	if acc == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", key)
	}
	return acc, nil
}

// CreateAccount creates the associated account of owner for mint. It fails
// with ErrDuplicate if the account exists.
func (c BaseController) CreateAccount(db vaultswap.KVStore, owner, mint vaultswap.Address) (vaultswap.Address, error) {
	key := AssociatedAddress(owner, mint)
	switch exists, err := c.accounts.Has(db, key); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check account")
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", key)
	}
	return c.EnsureAccount(db, owner, mint)
}

// EnsureAccount returns the associated account address of owner for mint.
// The account is created if it does not exist yet. The mint must exist.
func (c BaseController) EnsureAccount(db vaultswap.KVStore, owner, mint vaultswap.Address) (vaultswap.Address, error) {
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	obj := NewAccount(owner, mint)
	switch exists, err := c.accounts.Has(db, obj.Key()); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check account")
	case exists:
		return obj.Key(), nil
	}
	if err := c.accounts.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save account")
	}
	return obj.Key(), nil
}

// MintTo issues new tokens into the associated account of owner, creating
// the account if needed. Both the supply and the balance are overflow
// checked.
func (c BaseController) MintTo(db vaultswap.KVStore, mint, owner vaultswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "must be positive")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if m.Supply+amount < m.Supply {
		return errors.Wrap(errors.ErrOverflow, "mint supply")
	}
	key, err := c.EnsureAccount(db, owner, mint)
	if err != nil {
		return err
	}
	acc, err := c.account(db, key)
	if err != nil {
		return err
	}
	if acc.Amount+amount < acc.Amount {
		return errors.Wrap(errors.ErrOverflow, "account balance")
	}

	m.Supply += amount
	acc.Amount += amount
	if err := c.mints.Save(db, orm.NewSimpleObj(mint, m)); err != nil {
		return errors.Wrap(err, "cannot save mint")
	}
	if err := c.accounts.Save(db, orm.NewSimpleObj(key, acc)); err != nil {
		return errors.Wrap(err, "cannot save account")
	}
	return nil
}

// TransferChecked moves amount of mint from the associated account of from
// to the associated account of to. The destination account is created if
// missing. When the mint has a transfer hook it is called once balances
// are updated, and its error fails the transfer.
func (c BaseController) TransferChecked(
	ctx vaultswap.Context,
	db vaultswap.KVStore,
	mint, from, to vaultswap.Address,
	amount uint64,
	decimals uint32,
) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "must be positive")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if m.Decimals != decimals {
		return errors.Wrapf(errors.ErrInvalidInput, "mint has %d decimals, not %d", m.Decimals, decimals)
	}

	srcKey := AssociatedAddress(from, mint)
	src, err := c.account(db, srcKey)
	switch {
	case errors.ErrNotFound.Is(err):
		// an owner without an account holds nothing
		return errors.Wrapf(errors.ErrInsufficientAmount, "no %s account, need %d", m.Symbol, amount)
	case err != nil:
		return errors.Wrap(err, "source")
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", src.Amount, amount)
	}
	src.Amount -= amount
	if err := c.accounts.Save(db, orm.NewSimpleObj(srcKey, src)); err != nil {
		return errors.Wrap(err, "cannot save source")
	}

	// the destination is loaded after the source is saved, so a transfer to
	// self is a noop
	dstKey, err := c.EnsureAccount(db, to, mint)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	dst, err := c.account(db, dstKey)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if dst.Amount+amount < dst.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	dst.Amount += amount
	if err := c.accounts.Save(db, orm.NewSimpleObj(dstKey, dst)); err != nil {
		return errors.Wrap(err, "cannot save destination")
	}

	if m.TransferHook == "" {
		return nil
	}
	hook, ok := c.hooks[m.TransferHook]
	if !ok {
		return errors.Wrapf(ErrUnknownHook, "%q", m.TransferHook)
	}
	t := Transfer{
		Mint:             mint,
		SourceOwner:      from,
		Source:           srcKey,
		DestinationOwner: to,
		Destination:      dstKey,
		Amount:           amount,
	}
	if err := hook.OnTransfer(ctx, db, t); err != nil {
		return errors.Wrapf(err, "transfer hook %s", m.TransferHook)
	}
	return nil
}

// CloseAccount deletes a token account. Only an account with no tokens can
// be closed.
func (c BaseController) CloseAccount(db vaultswap.KVStore, account vaultswap.Address) error {
	acc, err := c.account(db, account)
	if err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(ErrAccountNotEmpty, "balance %d", acc.Amount)
	}
	if err := c.accounts.Delete(db, account); err != nil {
		return errors.Wrap(err, "cannot delete account")
	}
	return nil
}
