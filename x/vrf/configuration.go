package vrf

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
)

// Configuration of the vrf extension, kept in gconf under "vrf".
type Configuration struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	// Owner may update the configuration. No one can when empty.
	Owner vaultswap.Address `json:"owner"`
	// Identity is the only address allowed to deliver randomness.
	Identity vaultswap.Address `json:"identity"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner returns the address allowed to update the configuration.
func (c *Configuration) GetOwner() vaultswap.Address {
	return c.Owner
}

// Validate ensures the configuration is valid
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	errs = errors.AppendField(errs, "Identity", c.Identity.Validate())
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "cannot load configuration")
	}
	return &conf, nil
}
