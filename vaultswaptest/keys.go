package vaultswaptest

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/crypto"
)

// NewKey returns a new random ed25519 signer.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() vaultswap.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceCondition returns a condition that is unique for each n. Use it
// when tests need stable, readable identities.
func SequenceCondition(n byte) vaultswap.Condition {
	return vaultswap.NewCondition("test", "seq", []byte{n})
}
