package vrf

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ vaultswap.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration found under "conf.vrf". Without it
// callbacks are rejected until a configuration is saved.
func (*Initializer) FromGenesis(opts vaultswap.Options, db vaultswap.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, packageName, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}
	return nil
}
