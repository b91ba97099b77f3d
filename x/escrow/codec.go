package escrow

import (
	"github.com/iov-one/vaultswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension with the
// transaction codec of an application.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&MakeMsg{}, "vaultswap/Make", nil)
	c.RegisterConcrete(&TakeMsg{}, "vaultswap/Take", nil)
	c.RegisterConcrete(&RefundMsg{}, "vaultswap/Refund", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "vaultswap/UpdateEscrowConfiguration", nil)
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

// Marshal encodes the escrow with amino.
func (e *Escrow) Marshal() ([]byte, error) { return marshal(e) }

// Unmarshal decodes an escrow produced by Marshal.
func (e *Escrow) Unmarshal(raw []byte) error { return unmarshal(raw, e, errors.ErrInvalidModel) }

// Marshal encodes the configuration with amino.
func (c *Configuration) Marshal() ([]byte, error) { return marshal(c) }

// Unmarshal decodes a configuration produced by Marshal.
func (c *Configuration) Unmarshal(raw []byte) error {
	return unmarshal(raw, c, errors.ErrInvalidModel)
}

func (m *MakeMsg) Marshal() ([]byte, error)                { return marshal(m) }
func (m *MakeMsg) Unmarshal(raw []byte) error              { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *TakeMsg) Marshal() ([]byte, error)                { return marshal(m) }
func (m *TakeMsg) Unmarshal(raw []byte) error              { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *RefundMsg) Marshal() ([]byte, error)              { return marshal(m) }
func (m *RefundMsg) Unmarshal(raw []byte) error            { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) { return marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m, errors.ErrInvalidMsg)
}
