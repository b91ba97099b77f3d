package token

import (
	"fmt"

	"github.com/iov-one/vaultswap"
)

// Transfer describes a single token movement that already happened. It is
// passed to the transfer hook of the mint.
type Transfer struct {
	Mint vaultswap.Address
	// SourceOwner and DestinationOwner own the accounts the tokens moved
	// between.
	SourceOwner      vaultswap.Address
	Source           vaultswap.Address
	DestinationOwner vaultswap.Address
	Destination      vaultswap.Address
	Amount           uint64
}

// TransferHook is called after every checked transfer of a mint that names
// it. Returning an error vetoes the transfer and the whole transaction is
// rolled back.
type TransferHook interface {
	OnTransfer(ctx vaultswap.Context, db vaultswap.KVStore, t Transfer) error
}

// TransferHookFunc turns a function into a TransferHook.
type TransferHookFunc func(vaultswap.Context, vaultswap.KVStore, Transfer) error

// OnTransfer calls f.
func (f TransferHookFunc) OnTransfer(ctx vaultswap.Context, db vaultswap.KVStore, t Transfer) error {
	return f(ctx, db, t)
}

// Hooks maps the hook name stored in a Mint to its implementation.
type Hooks map[string]TransferHook

// Register adds a hook under the given name. Panics if the name is invalid
// or already taken.
func (h Hooks) Register(name string, hook TransferHook) {
	if !isHookName(name) {
		panic(fmt.Sprintf("invalid transfer hook name: %q", name))
	}
	if _, ok := h[name]; ok {
		panic(fmt.Sprintf("transfer hook %q registered twice", name))
	}
	h[name] = hook
}
