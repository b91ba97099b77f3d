package whitelist

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/token"
)

// HookName is the transfer hook name a mint must declare to be guarded by
// the whitelist.
const HookName = "whitelist"

// Hook vets every transfer of a guarded mint. Tokens may only move into a
// vault through Deposit and only from whitelisted users.
type Hook struct {
	vaults  VaultBucket
	entries EntryBucket
}

var _ token.TransferHook = Hook{}

// NewHook returns the whitelist transfer hook.
func NewHook() Hook {
	return Hook{
		vaults:  NewVaultBucket(),
		entries: NewEntryBucket(),
	}
}

// OnTransfer rejects the transfer unless it is a deposit by a whitelisted
// user into the vault of the admin the deposit was addressed to.
func (h Hook) OnTransfer(ctx vaultswap.Context, db vaultswap.KVStore, t token.Transfer) error {
	admin := depositAdmin(ctx)
	if admin == nil {
		return errors.Wrapf(ErrNotTransferring, "transfer of %s", t.Mint)
	}

	vault, err := h.vaults.vaultAt(db, t.DestinationOwner)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrAdminMismatch, "%s is not a vault", t.DestinationOwner)
	case err != nil:
		return err
	}
	if !vault.Admin.Equals(admin) {
		return errors.Wrapf(ErrAdminMismatch, "vault belongs to %s", vault.Admin)
	}
	if !vault.Mint.Equals(t.Mint) {
		return errors.Wrapf(ErrMintMismatch, "vault holds %s", vault.Mint)
	}

	ok, err := h.entries.IsWhitelisted(db, admin, t.SourceOwner)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotWhitelisted, "user %s", t.SourceOwner)
	}
	return nil
}
