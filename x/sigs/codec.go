package sigs

import (
	"github.com/iov-one/vaultswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Marshal encodes the signature with amino.
func (s *StdSignature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal decodes a signature produced by Marshal.
func (s *StdSignature) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}

// Marshal encodes the user with amino.
func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

// Unmarshal decodes a user produced by Marshal.
func (u *UserData) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, u); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}
