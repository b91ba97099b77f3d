package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// optKey is the genesis section read by the Initializer
const optKey = "token"

// Initializer fulfils the Initializer interface to load mints and balances
// from the genesis file.
type Initializer struct {
	Hooks Hooks
}

var _ vaultswap.Initializer = (*Initializer)(nil)

// genesis is the layout of the "token" section. The supply of every mint is
// the sum of its genesis balances.
type genesis struct {
	Mints []struct {
		Authority    vaultswap.Address `json:"authority"`
		Symbol       string            `json:"symbol"`
		Decimals     uint32            `json:"decimals"`
		TransferHook string            `json:"transfer_hook"`
	} `json:"mints"`
	Accounts []struct {
		Owner  vaultswap.Address `json:"owner"`
		Mint   vaultswap.Address `json:"mint"`
		Amount uint64            `json:"amount"`
	} `json:"accounts"`
}

// FromGenesis creates the mints first and then issues every account balance.
func (i *Initializer) FromGenesis(opts vaultswap.Options, db vaultswap.KVStore) error {
	var gen genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	ctrl := NewController(i.Hooks)
	for j, m := range gen.Mints {
		if err := m.Authority.Validate(); err != nil {
			return errors.Wrapf(err, "mint #%d authority", j)
		}
		if _, err := ctrl.CreateMint(db, m.Authority, m.Symbol, m.Decimals, m.TransferHook); err != nil {
			return errors.Wrapf(err, "mint #%d", j)
		}
	}
	for j, a := range gen.Accounts {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d owner", j)
		}
		if a.Amount == 0 {
			if _, err := ctrl.EnsureAccount(db, a.Owner, a.Mint); err != nil {
				return errors.Wrapf(err, "account #%d", j)
			}
			continue
		}
		if err := ctrl.MintTo(db, a.Mint, a.Owner, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", j)
		}
	}
	return nil
}
