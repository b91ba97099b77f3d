package whitelist

import "github.com/iov-one/vaultswap/errors"

// ABCI Response Codes
// whitelist takes 1010-1019
var (
	ErrNotWhitelisted  = errors.Register(1010, "user is not whitelisted")
	ErrAdminMismatch   = errors.Register(1011, "vault admin mismatch")
	ErrMintMismatch    = errors.Register(1012, "vault mint mismatch")
	ErrNotTransferring = errors.Register(1013, "not called from a deposit")
)
