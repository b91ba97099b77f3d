package whitelist

import (
	"github.com/iov-one/vaultswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension with the
// transaction codec of an application.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&InitVaultMsg{}, "vaultswap/InitVault", nil)
	c.RegisterConcrete(&SetWhitelistMsg{}, "vaultswap/SetWhitelist", nil)
	c.RegisterConcrete(&DepositMsg{}, "vaultswap/Deposit", nil)
}

func marshal(o interface{}) ([]byte, error) {
	return cdc.MarshalBinaryBare(o)
}

func unmarshal(raw []byte, o interface{}, kind *errors.Error) error {
	if err := cdc.UnmarshalBinaryBare(raw, o); err != nil {
		return errors.Wrap(kind, err.Error())
	}
	return nil
}

func (v *Vault) Marshal() ([]byte, error)   { return marshal(v) }
func (v *Vault) Unmarshal(raw []byte) error { return unmarshal(raw, v, errors.ErrInvalidModel) }
func (e *Entry) Marshal() ([]byte, error)   { return marshal(e) }
func (e *Entry) Unmarshal(raw []byte) error { return unmarshal(raw, e, errors.ErrInvalidModel) }

func (m *InitVaultMsg) Marshal() ([]byte, error)      { return marshal(m) }
func (m *InitVaultMsg) Unmarshal(raw []byte) error    { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *SetWhitelistMsg) Marshal() ([]byte, error)   { return marshal(m) }
func (m *SetWhitelistMsg) Unmarshal(raw []byte) error { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *DepositMsg) Marshal() ([]byte, error)        { return marshal(m) }
func (m *DepositMsg) Unmarshal(raw []byte) error      { return unmarshal(raw, m, errors.ErrInvalidMsg) }
