package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	decimals = 6
	// 10 tokens with 6 decimals
	tenTokens uint64 = 10000000
)

var blockNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// router is a minimal registry for handler tests
type router map[string]vaultswap.Handler

func (r router) Handle(path string, h vaultswap.Handler) {
	r[path] = h
}

// swap holds a store with two mints. The maker owns ten tokens of A and the
// taker ten tokens of B.
type swap struct {
	db     vaultswap.CacheableKVStore
	tokens token.BaseController
	auth   *vaultswaptest.CtxAuth
	routes router

	maker vaultswap.Condition
	taker vaultswap.Condition
	mintA vaultswap.Address
	mintB vaultswap.Address
}

func newSwap(t testing.TB) *swap {
	t.Helper()
	s := &swap{
		db:     store.MemStore(),
		tokens: token.NewController(nil),
		auth:   &vaultswaptest.CtxAuth{Key: "auth"},
		routes: router{},
		maker:  vaultswaptest.NewCondition(),
		taker:  vaultswaptest.NewCondition(),
	}
	RegisterRoutes(s.routes, s.auth, s.tokens)

	authority := vaultswaptest.NewCondition().Address()
	var err error
	s.mintA, err = s.tokens.CreateMint(s.db, authority, "AAA", decimals, "")
	assert.Nil(t, err)
	s.mintB, err = s.tokens.CreateMint(s.db, authority, "BBB", decimals, "")
	assert.Nil(t, err)
	assert.Nil(t, s.tokens.MintTo(s.db, s.mintA, s.maker.Address(), tenTokens))
	assert.Nil(t, s.tokens.MintTo(s.db, s.mintB, s.taker.Address(), tenTokens))
	return s
}

// run checks and delivers the message the way the savepoint decorator does:
// a failed delivery leaves no trace.
func (s *swap) run(t testing.TB, signer vaultswap.Condition, now time.Time, msg vaultswap.Msg) (*vaultswap.DeliverResult, error) {
	t.Helper()
	h, ok := s.routes[msg.Path()]
	if !ok {
		t.Fatalf("no handler for %s", msg.Path())
	}
	ctx := vaultswap.WithBlockTime(context.Background(), now)
	ctx = s.auth.SetConditions(ctx, signer)
	tx := &vaultswaptest.Tx{Msg: msg}

	check := s.db.CacheWrap()
	_, checkErr := h.Check(ctx, check, tx)
	check.Discard()

	cache := s.db.CacheWrap()
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if checkErr != nil {
		t.Fatalf("check failed where deliver passed: %+v", checkErr)
	}
	assert.Nil(t, cache.Write())
	return res, nil
}

func (s *swap) balance(t testing.TB, owner, mint vaultswap.Address) uint64 {
	t.Helper()
	bal, err := s.tokens.Balance(s.db, token.AssociatedAddress(owner, mint))
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	assert.Nil(t, err)
	return bal
}

func (s *swap) makeMsg(seed uint64) *MakeMsg {
	return &MakeMsg{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Seed:     seed,
		MintA:    s.mintA,
		MintB:    s.mintB,
		Deposit:  tenTokens,
		Receive:  tenTokens,
	}
}

func TestMakeAndTake(t *testing.T) {
	s := newSwap(t)
	maker, taker := s.maker.Address(), s.taker.Address()

	res, err := s.run(t, s.maker, blockNow, s.makeMsg(42))
	assert.Nil(t, err)
	addr := Address(maker, 42)
	assert.Equal(t, addr, vaultswap.Address(res.Data))
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, []byte("escrow"), res.Tags[0].Key)
	assert.Equal(t, []byte(addr.String()), res.Tags[0].Value)

	escrow, err := NewBucket().GetOpen(s.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, maker, escrow.Maker)
	assert.Equal(t, tenTokens, escrow.Receive)
	assert.Equal(t, vaultswap.AsUnixTime(blockNow.Add(5*24*time.Hour)), escrow.LockUntil)
	assert.Equal(t, token.AssociatedAddress(addr, s.mintA), escrow.Vault)

	vault, err := s.tokens.Balance(s.db, escrow.Vault)
	assert.Nil(t, err)
	assert.Equal(t, tenTokens, vault)
	assert.Equal(t, uint64(0), s.balance(t, maker, s.mintA))

	takeAt := blockNow.Add(5*24*time.Hour + time.Second)
	take := &TakeMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr}
	_, err = s.run(t, s.taker, takeAt, take)
	assert.Nil(t, err)

	assert.Equal(t, tenTokens, s.balance(t, taker, s.mintA))
	assert.Equal(t, uint64(0), s.balance(t, taker, s.mintB))
	assert.Equal(t, tenTokens, s.balance(t, maker, s.mintB))
	assert.Equal(t, uint64(0), s.balance(t, maker, s.mintA))

	// both the vault and the escrow are closed
	_, err = s.tokens.Balance(s.db, escrow.Vault)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = NewBucket().GetOpen(s.db, addr)
	assert.IsErr(t, errors.ErrNotFound, err)

	obj, err := NewBucket().Get(s.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, StateCompleted, AsEscrow(obj).State)

	// closed is terminal
	_, err = s.run(t, s.taker, takeAt, take)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = s.run(t, s.maker, takeAt, &RefundMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTakeTimeLock(t *testing.T) {
	lockEnd := blockNow.Add(DefaultLockPeriod)

	cases := map[string]struct {
		takeAt  time.Time
		wantErr *errors.Error
	}{
		"right after make": {
			takeAt:  blockNow,
			wantErr: ErrLocked,
		},
		"one second before unlock": {
			takeAt:  lockEnd.Add(-time.Second),
			wantErr: ErrLocked,
		},
		"exactly at unlock": {
			takeAt: lockEnd,
		},
		"long after unlock": {
			takeAt: lockEnd.Add(300 * 24 * time.Hour),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t)
			_, err := s.run(t, s.maker, blockNow, s.makeMsg(1))
			assert.Nil(t, err)
			addr := Address(s.maker.Address(), 1)

			_, err = s.run(t, s.taker, tc.takeAt, &TakeMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr})
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr != nil {
				// nothing moved
				escrow, err := NewBucket().GetOpen(s.db, addr)
				assert.Nil(t, err)
				vault, err := s.tokens.Balance(s.db, escrow.Vault)
				assert.Nil(t, err)
				assert.Equal(t, tenTokens, vault)
				assert.Equal(t, tenTokens, s.balance(t, s.taker.Address(), s.mintB))
				return
			}
			assert.Equal(t, tenTokens, s.balance(t, s.taker.Address(), s.mintA))
		})
	}
}

func TestRefund(t *testing.T) {
	s := newSwap(t)
	maker := s.maker.Address()

	_, err := s.run(t, s.maker, blockNow, s.makeMsg(7))
	assert.Nil(t, err)
	addr := Address(maker, 7)
	vault := token.AssociatedAddress(addr, s.mintA)

	refund := &RefundMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr}

	// only the maker can refund
	_, err = s.run(t, s.taker, blockNow, refund)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// the lock does not apply
	_, err = s.run(t, s.maker, blockNow.Add(time.Minute), refund)
	assert.Nil(t, err)

	assert.Equal(t, tenTokens, s.balance(t, maker, s.mintA))
	_, err = s.tokens.Balance(s.db, vault)
	assert.IsErr(t, errors.ErrNotFound, err)

	obj, err := NewBucket().Get(s.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, StateRefunded, AsEscrow(obj).State)

	_, err = s.run(t, s.maker, blockNow, refund)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = s.run(t, s.taker, blockNow.Add(DefaultLockPeriod), &TakeMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr})
	assert.IsErr(t, errors.ErrNotFound, err)

	// the seed cannot be used again
	_, err = s.run(t, s.maker, blockNow, s.makeMsg(7))
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestMakeFailures(t *testing.T) {
	cases := map[string]struct {
		msg     func(s *swap) *MakeMsg
		wantErr *errors.Error
	}{
		"deposit above balance": {
			msg: func(s *swap) *MakeMsg {
				m := s.makeMsg(1)
				m.Deposit = tenTokens + 1
				return m
			},
			wantErr: errors.ErrInsufficientAmount,
		},
		"same mint on both sides": {
			msg: func(s *swap) *MakeMsg {
				m := s.makeMsg(1)
				m.MintB = s.mintA
				return m
			},
			wantErr: errors.ErrInvalidInput,
		},
		"zero receive": {
			msg: func(s *swap) *MakeMsg {
				m := s.makeMsg(1)
				m.Receive = 0
				return m
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"unknown mint": {
			msg: func(s *swap) *MakeMsg {
				m := s.makeMsg(1)
				m.MintB = token.MintAddress(s.maker.Address(), "CCC")
				return m
			},
			wantErr: errors.ErrNotFound,
		},
		"missing metadata": {
			msg: func(s *swap) *MakeMsg {
				m := s.makeMsg(1)
				m.Metadata = nil
				return m
			},
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t)
			_, err := s.run(t, s.maker, blockNow, tc.msg(s))
			assert.IsErr(t, tc.wantErr, err)

			// a failed make leaves no escrow and no vault behind
			has, err := NewBucket().Has(s.db, Address(s.maker.Address(), 1))
			assert.Nil(t, err)
			assert.Equal(t, false, has)
			assert.Equal(t, tenTokens, s.balance(t, s.maker.Address(), s.mintA))
		})
	}
}

func TestMakeDuplicateSeed(t *testing.T) {
	s := newSwap(t)
	assert.Nil(t, s.tokens.MintTo(s.db, s.mintA, s.maker.Address(), tenTokens))

	_, err := s.run(t, s.maker, blockNow, s.makeMsg(3))
	assert.Nil(t, err)
	_, err = s.run(t, s.maker, blockNow, s.makeMsg(3))
	assert.IsErr(t, errors.ErrDuplicate, err)

	// another seed is another escrow
	_, err = s.run(t, s.maker, blockNow, s.makeMsg(4))
	assert.Nil(t, err)

	open, err := NewBucket().ByMaker(s.db, s.maker.Address())
	assert.Nil(t, err)
	assert.Equal(t, 2, len(open))
}

func TestMakeExistingVault(t *testing.T) {
	s := newSwap(t)
	addr := Address(s.maker.Address(), 5)

	// anyone can fund the escrow address before the escrow exists
	donor := vaultswaptest.NewCondition()
	assert.Nil(t, s.tokens.MintTo(s.db, s.mintA, donor.Address(), 5))
	err := s.tokens.TransferChecked(context.Background(), s.db, s.mintA, donor.Address(), addr, 5, decimals)
	assert.Nil(t, err)

	_, err = s.run(t, s.maker, blockNow, s.makeMsg(5))
	assert.IsErr(t, errors.ErrDuplicate, err)

	has, err := NewBucket().Has(s.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	assert.Equal(t, tenTokens, s.balance(t, s.maker.Address(), s.mintA))
	assert.Equal(t, uint64(5), s.balance(t, addr, s.mintA))

	// a fresh seed locks exactly the deposit
	_, err = s.run(t, s.maker, blockNow, s.makeMsg(6))
	assert.Nil(t, err)
	assert.Equal(t, tenTokens, s.balance(t, Address(s.maker.Address(), 6), s.mintA))
}

func TestTakeInsufficientPayment(t *testing.T) {
	s := newSwap(t)
	_, err := s.run(t, s.maker, blockNow, s.makeMsg(1))
	assert.Nil(t, err)
	addr := Address(s.maker.Address(), 1)

	poor := vaultswaptest.NewCondition()
	take := &TakeMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr}
	// no mint b account at all
	_, err = s.run(t, poor, blockNow.Add(DefaultLockPeriod), take)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	assert.Nil(t, s.tokens.MintTo(s.db, s.mintB, poor.Address(), tenTokens-1))
	_, err = s.run(t, poor, blockNow.Add(DefaultLockPeriod), take)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = NewBucket().GetOpen(s.db, addr)
	assert.Nil(t, err)
}

func TestLockPeriodConfiguration(t *testing.T) {
	s := newSwap(t)
	owner := vaultswaptest.NewCondition()
	conf := &Configuration{
		Metadata:   &vaultswap.Metadata{Schema: 1},
		Owner:      owner.Address(),
		LockPeriod: vaultswap.AsUnixDuration(time.Hour),
	}
	assert.Nil(t, gconf.Save(s.db, packageName, conf))

	_, err := s.run(t, s.maker, blockNow, s.makeMsg(1))
	assert.Nil(t, err)
	escrow, err := NewBucket().GetOpen(s.db, Address(s.maker.Address(), 1))
	assert.Nil(t, err)
	assert.Equal(t, vaultswap.AsUnixTime(blockNow.Add(time.Hour)), escrow.LockUntil)

	// only the owner can change the lock period
	update := &UpdateConfigurationMsg{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Patch:    &Configuration{LockPeriod: vaultswap.AsUnixDuration(10 * time.Minute)},
	}
	_, err = s.run(t, s.maker, blockNow, update)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = s.run(t, owner, blockNow, update)
	assert.Nil(t, err)

	got, err := loadConf(s.db)
	assert.Nil(t, err)
	assert.Equal(t, vaultswap.AsUnixDuration(10*time.Minute), got.LockPeriod)
	assert.Equal(t, owner.Address(), got.Owner)

	assert.Nil(t, s.tokens.MintTo(s.db, s.mintA, s.maker.Address(), tenTokens))
	_, err = s.run(t, s.maker, blockNow, s.makeMsg(2))
	assert.Nil(t, err)
	escrow, err = NewBucket().GetOpen(s.db, Address(s.maker.Address(), 2))
	assert.Nil(t, err)
	assert.Equal(t, vaultswap.AsUnixTime(blockNow.Add(10*time.Minute)), escrow.LockUntil)
}

func TestEscrowQuery(t *testing.T) {
	s := newSwap(t)
	_, err := s.run(t, s.maker, blockNow, s.makeMsg(9))
	assert.Nil(t, err)
	addr := Address(s.maker.Address(), 9)

	qr := vaultswap.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/escrows").Query(s.db, vaultswap.KeyQueryMod, addr)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	res, err = qr.Handler("/escrows/maker").Query(s.db, vaultswap.KeyQueryMod, s.maker.Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	var escrow Escrow
	assert.Nil(t, escrow.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(9), escrow.Seed)

	// refunded escrows drop out of the index
	_, err = s.run(t, s.maker, blockNow, &RefundMsg{Metadata: &vaultswap.Metadata{Schema: 1}, Escrow: addr})
	assert.Nil(t, err)
	res, err = qr.Handler("/escrows/maker").Query(s.db, vaultswap.KeyQueryMod, s.maker.Address())
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))
}
