package escrow

import "github.com/iov-one/vaultswap/errors"

// ABCI Response Codes
// escrow takes 1000-1009
var (
	ErrLocked = errors.Register(1000, "too early to take from the escrow")
)
