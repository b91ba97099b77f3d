package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
)

type myconfigMsg struct {
	Patch *myconfig
}

func (m *myconfigMsg) Path() string {
	return "mypkg/update_configuration"
}

func (m *myconfigMsg) Validate() error {
	return nil
}

func (m *myconfigMsg) Marshal() ([]byte, error) {
	return testCdc.MarshalBinaryBare(m)
}

func (m *myconfigMsg) Unmarshal(raw []byte) error {
	return testCdc.UnmarshalBinaryBare(raw, m)
}

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := vaultswaptest.NewCondition()
	initial := &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Lock: 60}

	cases := map[string]struct {
		// Init is the initial state of the configuration. Use nil to
		// not provide initial state.
		init *myconfig

		msg            vaultswap.Msg
		msgConditions  []vaultswap.Condition
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		wantConfig *myconfig
	}{
		"success": {
			init: initial,
			msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Lock: 120},
			},
			msgConditions: []vaultswap.Condition{cond},
			wantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Lock: 120},
		},
		"message must be signed by the configuration owner": {
			init: initial,
			msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 1},
			},
			msgConditions:  []vaultswap.Condition{vaultswaptest.NewCondition()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			init: initial,
			msg: &myconfigMsg{
				Patch: &myconfig{Num: 0, Str: "", Lock: 90},
			},
			msgConditions: []vaultswap.Condition{cond},
			wantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Lock: 90},
		},
		"invalid configuration is not accepted": {
			init: initial,
			msg: &myconfigMsg{
				Patch: &myconfig{Num: -4},
			},
			msgConditions:  []vaultswap.Condition{cond},
			wantCheckErr:   errors.ErrInvalidState,
			wantDeliverErr: errors.ErrInvalidState,
		},
		"missing configuration cannot be patched": {
			msg: &myconfigMsg{
				Patch: &myconfig{Num: 4},
			},
			msgConditions:  []vaultswap.Condition{cond},
			wantCheckErr:   errors.ErrNotFound,
			wantDeliverErr: errors.ErrNotFound,
		},
		"patch is required": {
			init:           initial,
			msg:            &myconfigMsg{},
			msgConditions:  []vaultswap.Condition{cond},
			wantCheckErr:   errors.ErrInvalidState,
			wantDeliverErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.init != nil {
				assert.Nil(t, Save(db, "mypkg", tc.init))
			}

			auth := &vaultswaptest.CtxAuth{Key: "auth"}
			ctx := auth.SetConditions(context.Background(), tc.msgConditions...)
			handler := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth)
			tx := &vaultswaptest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %s", err)
			}
			cache.Discard()
			if _, err := handler.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %s", err)
			}

			if tc.wantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, tc.wantConfig, &got)
			}
		})
	}
}
