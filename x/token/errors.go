package token

import "github.com/iov-one/vaultswap/errors"

// ABCI Response Codes
// token takes 1020-1029
var (
	ErrAccountNotEmpty = errors.Register(1020, "account is not empty")
	ErrUnknownHook     = errors.Register(1021, "unknown transfer hook")
)
