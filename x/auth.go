package x

import (
	"github.com/iov-one/vaultswap"
)

// Authenticator tells a handler who signed the transaction. The escrow,
// token, whitelist and vrf handlers receive one at construction: x/sigs in
// vaultswapd, a context double in their tests.
type Authenticator interface {
	// GetConditions returns the signers, main signer first.
	GetConditions(vaultswap.Context) []vaultswap.Condition
	// HasAddress reports whether addr signed.
	HasAddress(vaultswap.Context, vaultswap.Address) bool
}

// MultiAuth merges several Authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns a MultiAuth over impls. Order is kept, so the main
// signer comes from the first one that has any.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions returns the signers of all authenticators without
// duplicates.
func (m MultiAuth) GetConditions(ctx vaultswap.Context) []vaultswap.Condition {
	var res []vaultswap.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasPerm(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress reports whether any authenticator knows addr.
func (m MultiAuth) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all signers.
func GetAddresses(ctx vaultswap.Context, auth Authenticator) []vaultswap.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]vaultswap.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first signer, or nil for an unsigned transaction.
// It is the maker of escrow/make and the taker of escrow/take.
func MainSigner(ctx vaultswap.Context, auth Authenticator) vaultswap.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses reports whether every address in required signed.
func HasAllAddresses(ctx vaultswap.Context, auth Authenticator, required []vaultswap.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNConditions reports whether at least n of requested signed.
func HasNConditions(ctx vaultswap.Context, auth Authenticator, requested []vaultswap.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	perms := auth.GetConditions(ctx)
	for _, perm := range requested {
		if hasPerm(perms, perm) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasPerm(perms []vaultswap.Condition, perm vaultswap.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}
