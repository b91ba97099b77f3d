package whitelist

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	initVaultCost    int64 = 200
	setWhitelistCost int64 = 50
	depositCost      int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, ctrl token.Controller) {
	vaults := NewVaultBucket()
	r.Handle(pathInitVaultMsg, InitVaultHandler{auth, vaults, ctrl})
	r.Handle(pathSetWhitelistMsg, SetWhitelistHandler{auth, vaults, NewEntryBucket()})
	r.Handle(pathDepositMsg, DepositHandler{auth, vaults, ctrl})
}

func signer(ctx vaultswap.Context, auth x.Authenticator) (vaultswap.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return cond.Address(), nil
}

// InitVaultHandler opens the vault of the signer.
type InitVaultHandler struct {
	auth   x.Authenticator
	vaults VaultBucket
	tokens token.Controller
}

var _ vaultswap.Handler = InitVaultHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitVaultHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: initVaultCost}, nil
}

// Deliver stores the vault and creates its token account. The vault address
// is returned as data.
func (h InitVaultHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewVault(admin, msg.Mint)
	if err := h.vaults.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	if _, err := h.tokens.EnsureAccount(db, obj.Key(), msg.Mint); err != nil {
		return nil, errors.Wrap(err, "cannot create vault account")
	}
	return &vaultswap.DeliverResult{Data: obj.Key()}, nil
}

func (h InitVaultHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*InitVaultMsg, vaultswap.Address, error) {
	var msg InitVaultMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	mint, err := h.tokens.Mint(db, msg.Mint)
	if err != nil {
		return nil, nil, err
	}
	if mint.TransferHook != HookName {
		return nil, nil, errors.Wrapf(errors.ErrInvalidInput, "mint %s is not guarded by the whitelist", msg.Mint)
	}
	switch exists, err := h.vaults.Has(db, VaultAddress(admin)); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "cannot check vault")
	case exists:
		return nil, nil, errors.Wrap(errors.ErrDuplicate, "vault already initialised")
	}
	return &msg, admin, nil
}

// SetWhitelistHandler adds or removes a user from the whitelist of the
// signer.
type SetWhitelistHandler struct {
	auth    x.Authenticator
	vaults  VaultBucket
	entries EntryBucket
}

var _ vaultswap.Handler = SetWhitelistHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetWhitelistHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: setWhitelistCost}, nil
}

// Deliver creates or updates the entry of the user.
func (h SetWhitelistHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewEntry(admin, msg.User, msg.IsWhitelisted)
	if err := h.entries.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store entry")
	}
	return &vaultswap.DeliverResult{Data: obj.Key()}, nil
}

func (h SetWhitelistHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*SetWhitelistMsg, vaultswap.Address, error) {
	var msg SetWhitelistMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	// only vault admins keep a whitelist
	if _, err := h.vaults.GetVault(db, admin); err != nil {
		return nil, nil, err
	}
	return &msg, admin, nil
}

// DepositHandler moves tokens of the signer into a vault. The whitelist
// hook of the mint vets the transfer.
type DepositHandler struct {
	auth   x.Authenticator
	vaults VaultBucket
	tokens token.Controller
}

var _ vaultswap.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver transfers the tokens into the vault account.
func (h DepositHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, user, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ctx = withDeposit(ctx, msg.Admin)
	err = h.tokens.TransferChecked(ctx, db, msg.Mint, user, VaultAddress(msg.Admin), msg.Amount, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*DepositMsg, vaultswap.Address, error) {
	var msg DepositMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	user, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	vault, err := h.vaults.GetVault(db, msg.Admin)
	if err != nil {
		return nil, nil, err
	}
	if !vault.Mint.Equals(msg.Mint) {
		return nil, nil, errors.Wrapf(ErrMintMismatch, "vault holds %s", vault.Mint)
	}
	return &msg, user, nil
}
