package escrow

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
	"github.com/iov-one/vaultswap/x/token"
)

// Minter issues tokens. It funds the vaults of genesis escrows.
type Minter interface {
	MintTo(db vaultswap.KVStore, mint, owner vaultswap.Address, amount uint64) error
}

var _ Minter = token.BaseController{}

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct {
	Minter Minter
}

var _ vaultswap.Initializer = (*Initializer)(nil)

// FromGenesis stores the escrow configuration found under "conf" and opens
// the escrows listed under "escrow". Each vault is funded with newly minted
// tokens.
func (i *Initializer) FromGenesis(opts vaultswap.Options, db vaultswap.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// loadConf falls back to the defaults
	default:
		return errors.Wrap(err, "init config")
	}

	var gen struct {
		Escrows []struct {
			Seed      uint64             `json:"seed"`
			Maker     vaultswap.Address  `json:"maker"`
			MintA     vaultswap.Address  `json:"mint_a"`
			MintB     vaultswap.Address  `json:"mint_b"`
			Deposit   uint64             `json:"deposit"`
			Receive   uint64             `json:"receive"`
			LockUntil vaultswap.UnixTime `json:"lock_until"`
		} `json:"escrows"`
	}
	if err := opts.ReadOptions(packageName, &gen); err != nil {
		return err
	}

	bucket := NewBucket()
	for j, e := range gen.Escrows {
		escrow := &Escrow{
			Metadata:  &vaultswap.Metadata{Schema: 1},
			Seed:      e.Seed,
			Maker:     e.Maker,
			MintA:     e.MintA,
			MintB:     e.MintB,
			Receive:   e.Receive,
			Deposit:   e.Deposit,
			LockUntil: e.LockUntil,
			State:     StateOpen,
		}
		if err := e.Maker.Validate(); err != nil {
			return errors.Wrapf(err, "escrow #%d maker", j)
		}
		addr := escrow.Address()
		switch exists, err := bucket.Has(db, addr); {
		case err != nil:
			return errors.Wrapf(err, "escrow #%d", j)
		case exists:
			return errors.Wrapf(errors.ErrDuplicate, "escrow #%d", j)
		}
		escrow.Vault = token.AssociatedAddress(addr, e.MintA)
		if err := bucket.Save(db, NewEscrow(escrow)); err != nil {
			return errors.Wrapf(err, "escrow #%d", j)
		}
		if err := i.Minter.MintTo(db, e.MintA, addr, e.Deposit); err != nil {
			return errors.Wrapf(err, "escrow #%d vault", j)
		}
	}
	return nil
}
