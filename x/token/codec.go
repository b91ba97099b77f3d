package token

import (
	"github.com/iov-one/vaultswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension with the
// transaction codec of an application.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&CreateMintMsg{}, "vaultswap/CreateMint", nil)
	c.RegisterConcrete(&CreateAccountMsg{}, "vaultswap/CreateAccount", nil)
	c.RegisterConcrete(&MintToMsg{}, "vaultswap/MintTo", nil)
	c.RegisterConcrete(&TransferMsg{}, "vaultswap/Transfer", nil)
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

// Marshal encodes the mint with amino.
func (m *Mint) Marshal() ([]byte, error) { return marshal(m) }

// Unmarshal decodes a mint produced by Marshal.
func (m *Mint) Unmarshal(raw []byte) error { return unmarshal(raw, m, errors.ErrInvalidModel) }

// Marshal encodes the account with amino.
func (a *Account) Marshal() ([]byte, error) { return marshal(a) }

// Unmarshal decodes an account produced by Marshal.
func (a *Account) Unmarshal(raw []byte) error { return unmarshal(raw, a, errors.ErrInvalidModel) }

func (m *CreateMintMsg) Marshal() ([]byte, error)      { return marshal(m) }
func (m *CreateMintMsg) Unmarshal(raw []byte) error    { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *CreateAccountMsg) Marshal() ([]byte, error)   { return marshal(m) }
func (m *CreateAccountMsg) Unmarshal(raw []byte) error { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *MintToMsg) Marshal() ([]byte, error)          { return marshal(m) }
func (m *MintToMsg) Unmarshal(raw []byte) error        { return unmarshal(raw, m, errors.ErrInvalidMsg) }
func (m *TransferMsg) Marshal() ([]byte, error)        { return marshal(m) }
func (m *TransferMsg) Unmarshal(raw []byte) error      { return unmarshal(raw, m, errors.ErrInvalidMsg) }
