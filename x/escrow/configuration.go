package escrow

import (
	"time"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
)

// DefaultLockPeriod is used until a configuration is stored.
const DefaultLockPeriod = 5 * 24 * time.Hour

// Configuration of the escrow extension, kept in gconf under "escrow".
type Configuration struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	// Owner may update the configuration. No one can when empty.
	Owner vaultswap.Address `json:"owner"`
	// LockPeriod is the time after Make during which Take is rejected.
	// Zero disables the lock.
	LockPeriod vaultswap.UnixDuration `json:"lock_period"`
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
	if c.LockPeriod < 0 {
		errs = errors.Append(errs, errors.Field("LockPeriod", errors.ErrInvalidInput, "negative"))
	}
	return errs
}

// loadConf returns the stored configuration or the default one when the
// chain was started without it.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{
			Metadata:   &vaultswap.Metadata{Schema: 1},
			LockPeriod: vaultswap.AsUnixDuration(DefaultLockPeriod),
		}, nil
	default:
		return nil, errors.Wrap(err, "cannot load configuration")
	}
}
