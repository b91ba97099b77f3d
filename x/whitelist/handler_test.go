package whitelist

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
	"github.com/iov-one/vaultswap/x/token"
)

// router is a minimal registry for handler tests
type router map[string]vaultswap.Handler

func (r router) Handle(path string, h vaultswap.Handler) {
	r[path] = h
}

type fixture struct {
	db     vaultswap.CacheableKVStore
	tokens token.BaseController
	auth   *vaultswaptest.CtxAuth
	routes router

	admin vaultswap.Condition
	user  vaultswap.Condition
	mint  vaultswap.Address
	plain vaultswap.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	hooks := token.Hooks{}
	hooks.Register(HookName, NewHook())

	f := &fixture{
		db:     store.MemStore(),
		tokens: token.NewController(hooks),
		auth:   &vaultswaptest.CtxAuth{Key: "auth"},
		routes: router{},
		admin:  vaultswaptest.NewCondition(),
		user:   vaultswaptest.NewCondition(),
	}
	RegisterRoutes(f.routes, f.auth, f.tokens)

	authority := vaultswaptest.NewCondition().Address()
	var err error
	f.mint, err = f.tokens.CreateMint(f.db, authority, "WLT", 6, HookName)
	assert.Nil(t, err)
	f.plain, err = f.tokens.CreateMint(f.db, authority, "PLN", 6, "")
	assert.Nil(t, err)
	assert.Nil(t, f.tokens.MintTo(f.db, f.mint, f.user.Address(), 1000))
	return f
}

// run checks and delivers the message, writing only successful deliveries.
func (f *fixture) run(signer vaultswap.Condition, msg vaultswap.Msg) error {
	h := f.routes[msg.Path()]
	ctx := f.auth.SetConditions(context.Background(), signer)
	tx := &vaultswaptest.Tx{Msg: msg}

	check := f.db.CacheWrap()
	_, err := h.Check(ctx, check, tx)
	check.Discard()
	if err != nil {
		return err
	}

	cache := f.db.CacheWrap()
	if _, err := h.Deliver(ctx, cache, tx); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

func (f *fixture) vaultBalance(t testing.TB) uint64 {
	t.Helper()
	bal, err := f.tokens.Balance(f.db, token.AssociatedAddress(VaultAddress(f.admin.Address()), f.mint))
	assert.Nil(t, err)
	return bal
}

func meta() *vaultswap.Metadata {
	return &vaultswap.Metadata{Schema: 1}
}

func TestWhitelistDeposit(t *testing.T) {
	f := newFixture(t)
	admin := f.admin.Address()
	user := f.user.Address()

	assert.Nil(t, f.run(f.admin, &InitVaultMsg{Metadata: meta(), Mint: f.mint}))
	assert.Equal(t, uint64(0), f.vaultBalance(t))

	deposit := &DepositMsg{Metadata: meta(), Admin: admin, Mint: f.mint, Amount: 100, Decimals: 6}

	// nobody is whitelisted yet
	err := f.run(f.user, deposit)
	assert.IsErr(t, ErrNotWhitelisted, err)
	assert.Equal(t, uint64(0), f.vaultBalance(t))

	assert.Nil(t, f.run(f.admin, &SetWhitelistMsg{Metadata: meta(), User: user, IsWhitelisted: true}))
	assert.Nil(t, f.run(f.user, deposit))
	assert.Equal(t, uint64(100), f.vaultBalance(t))

	assert.Nil(t, f.run(f.admin, &SetWhitelistMsg{Metadata: meta(), User: user, IsWhitelisted: false}))
	err = f.run(f.user, deposit)
	assert.IsErr(t, ErrNotWhitelisted, err)
	assert.Equal(t, uint64(100), f.vaultBalance(t))

	bal, err := f.tokens.Balance(f.db, token.AssociatedAddress(user, f.mint))
	assert.Nil(t, err)
	assert.Equal(t, uint64(900), bal)
}

func TestWhitelistFailures(t *testing.T) {
	f := newFixture(t)
	admin := f.admin.Address()
	other := vaultswaptest.NewCondition()

	// no vault yet
	err := f.run(f.admin, &SetWhitelistMsg{Metadata: meta(), User: f.user.Address(), IsWhitelisted: true})
	assert.IsErr(t, errors.ErrNotFound, err)

	err = f.run(f.admin, &InitVaultMsg{Metadata: meta(), Mint: f.plain})
	assert.IsErr(t, errors.ErrInvalidInput, err)

	assert.Nil(t, f.run(f.admin, &InitVaultMsg{Metadata: meta(), Mint: f.mint}))
	err = f.run(f.admin, &InitVaultMsg{Metadata: meta(), Mint: f.mint})
	assert.IsErr(t, errors.ErrDuplicate, err)

	assert.Nil(t, f.run(f.admin, &SetWhitelistMsg{Metadata: meta(), User: f.user.Address(), IsWhitelisted: true}))

	cases := map[string]struct {
		signer  vaultswap.Condition
		msg     *DepositMsg
		wantErr *errors.Error
	}{
		"wrong mint": {
			signer:  f.user,
			msg:     &DepositMsg{Metadata: meta(), Admin: admin, Mint: f.plain, Amount: 1, Decimals: 6},
			wantErr: ErrMintMismatch,
		},
		"unknown admin": {
			signer:  f.user,
			msg:     &DepositMsg{Metadata: meta(), Admin: other.Address(), Mint: f.mint, Amount: 1, Decimals: 6},
			wantErr: errors.ErrNotFound,
		},
		"wrong decimals": {
			signer:  f.user,
			msg:     &DepositMsg{Metadata: meta(), Admin: admin, Mint: f.mint, Amount: 1, Decimals: 2},
			wantErr: errors.ErrInvalidInput,
		},
		"not enough tokens": {
			signer:  f.user,
			msg:     &DepositMsg{Metadata: meta(), Admin: admin, Mint: f.mint, Amount: 1001, Decimals: 6},
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			signer:  f.user,
			msg:     &DepositMsg{Metadata: meta(), Admin: admin, Mint: f.mint, Decimals: 6},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := f.run(tc.signer, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestHookOutsideDeposit(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.run(f.admin, &InitVaultMsg{Metadata: meta(), Mint: f.mint}))
	assert.Nil(t, f.run(f.admin, &SetWhitelistMsg{Metadata: meta(), User: f.user.Address(), IsWhitelisted: true}))

	// a plain transfer of a guarded mint is rejected, even into the vault
	db := f.db.CacheWrap()
	err := f.tokens.TransferChecked(context.Background(), db, f.mint, f.user.Address(), VaultAddress(f.admin.Address()), 1, 6)
	assert.IsErr(t, ErrNotTransferring, err)
	db.Discard()

	// a deposit addressed to one admin cannot land in another vault
	other := vaultswaptest.NewCondition()
	ctx := withDeposit(context.Background(), other.Address())
	db = f.db.CacheWrap()
	err = f.tokens.TransferChecked(ctx, db, f.mint, f.user.Address(), VaultAddress(f.admin.Address()), 1, 6)
	assert.IsErr(t, ErrAdminMismatch, err)
	db.Discard()

	// nor in an account that is not a vault
	ctx = withDeposit(context.Background(), f.admin.Address())
	db = f.db.CacheWrap()
	err = f.tokens.TransferChecked(ctx, db, f.mint, f.user.Address(), other.Address(), 1, 6)
	assert.IsErr(t, ErrAdminMismatch, err)
	db.Discard()
}

func TestVaultValidate(t *testing.T) {
	admin := vaultswaptest.NewCondition().Address()
	mint := vaultswaptest.NewCondition().Address()

	v := AsVault(NewVault(admin, mint))
	assert.Nil(t, v.Validate())

	v.VaultAccount = token.AssociatedAddress(admin, mint)
	assert.FieldError(t, v.Validate(), "VaultAccount", errors.ErrInvalidInput)

	e := AsEntry(NewEntry(admin, nil, true))
	assert.FieldError(t, e.Validate(), "User", errors.ErrEmpty)
}
