package utils

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("escrow"), []byte("open")
	// some key, value to try to write
	nk, nv := []byte("vault"), []byte("10000000")

	write := func(db vaultswap.KVStore) {
		if err := db.Set(nk, nv); err != nil {
			t.Fatalf("cannot write: %s", err)
		}
	}

	cases := map[string]struct {
		save    Savepoint
		fail    bool
		check   bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint off keeps writes of a failure": {
			save:    NewSavepoint(),
			fail:    true,
			written: [][]byte{ok, nk},
		},
		"savepoint on check drops writes of a failure": {
			save:    NewSavepoint().OnCheck(),
			fail:    true,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on deliver drops writes of a failure": {
			save:    NewSavepoint().OnDeliver(),
			fail:    true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			fail:    true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
		"success on check is written": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			check:   true,
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, db.Set(ok, ov))

			var h vaultswap.Handler
			if tc.check {
				h = &checkWriter{fail: tc.fail, write: write}
			} else {
				handler := &vaultswaptest.Handler{OnDeliver: write}
				if tc.fail {
					handler.DeliverErr = errors.ErrHuman
				}
				h = handler
			}
			stack := vaultswaptest.Decorate(h, tc.save)

			var err error
			if tc.check {
				_, err = stack.Check(context.Background(), db, &vaultswaptest.Tx{})
			} else {
				_, err = stack.Deliver(context.Background(), db, &vaultswaptest.Tx{})
			}
			if tc.fail {
				assert.IsErr(t, errors.ErrHuman, err)
			} else {
				assert.Nil(t, err)
			}

			for _, k := range tc.written {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, true, has)
			}
			for _, k := range tc.missing {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, false, has)
			}
		})
	}
}

// checkWriter writes on check and optionally fails.
type checkWriter struct {
	vaultswaptest.Handler
	fail  bool
	write func(vaultswap.KVStore)
}

func (c *checkWriter) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	c.write(db)
	if c.fail {
		return nil, errors.ErrHuman
	}
	return &vaultswap.CheckResult{}, nil
}
