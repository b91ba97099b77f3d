package vrf

import (
	"github.com/iov-one/vaultswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension with the
// transaction codec of an application.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&CreateUserMsg{}, "vaultswap/CreateUser", nil)
	c.RegisterConcrete(&CallbackMsg{}, "vaultswap/Callback", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "vaultswap/UpdateVRFConfiguration", nil)
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

func (u *UserAccount) Marshal() ([]byte, error)   { return marshal(u) }
func (u *UserAccount) Unmarshal(raw []byte) error { return unmarshal(raw, u, errors.ErrInvalidModel) }
func (c *Configuration) Marshal() ([]byte, error) { return marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error {
	return unmarshal(raw, c, errors.ErrInvalidModel)
}

func (m *CreateUserMsg) Marshal() ([]byte, error)          { return marshal(m) }
func (m *CreateUserMsg) Unmarshal(raw []byte) error        { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *CallbackMsg) Marshal() ([]byte, error)            { return marshal(m) }
func (m *CallbackMsg) Unmarshal(raw []byte) error          { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) { return marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m, errors.ErrInvalidMsg)
}
