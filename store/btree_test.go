package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// base is the root of our data, we can layer on top and
	// all queries should work
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("escrow"), []byte("open")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("vault"), []byte("10000000")
	assertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("tombstone"), []byte("refunded")
	c2 := base.CacheWrap()
	assertGetHas(t, c2, k, v, true)
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k))
	assertGetHas(t, c2, k3, v3, true)
	assertGetHas(t, c2, k, nil, false)
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)
	assertGetHas(t, base, k, v, true)

	// and a deletion is visible after the write
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k2))
	assertGetHas(t, base, k2, v2, true)
	require.NoError(t, c3.Write())
	assertGetHas(t, base, k2, nil, false)
}

// TestBTreeCacheConflicts checks that overwrites and deletes in nested
// caches always show the most recent value.
func TestBTreeCacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		// parentQuery is what we expect from the parent before the child
		// writes, childQuery what we expect after
		parentQuery []Model
		childQuery  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps: []Op{
				SetOp([]byte("a"), []byte("1")),
				SetOp([]byte("b"), []byte("2")),
			},
			childOps: []Op{
				SetOp([]byte("a"), []byte("11")),
				DelOp([]byte("b")),
				SetOp([]byte("c"), []byte("3")),
			},
			parentQuery: []Model{
				{Key: []byte("a"), Value: []byte("1")},
				{Key: []byte("b"), Value: []byte("2")},
			},
			childQuery: []Model{
				{Key: []byte("a"), Value: []byte("11")},
				{Key: []byte("c"), Value: []byte("3")},
			},
		},
		"delete then set again": {
			parentOps: []Op{
				SetOp([]byte("x"), []byte("old")),
			},
			childOps: []Op{
				DelOp([]byte("x")),
				SetOp([]byte("x"), []byte("new")),
			},
			parentQuery: []Model{
				{Key: []byte("x"), Value: []byte("old")},
			},
			childQuery: []Model{
				{Key: []byte("x"), Value: []byte("new")},
			},
		},
		"delete everything": {
			parentOps: []Op{
				SetOp([]byte("x"), []byte("1")),
				SetOp([]byte("y"), []byte("2")),
			},
			childOps: []Op{
				DelOp([]byte("y")),
				DelOp([]byte("x")),
			},
			parentQuery: []Model{
				{Key: []byte("x"), Value: []byte("1")},
				{Key: []byte("y"), Value: []byte("2")},
			},
			childQuery: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := MemStore()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			verifyIterator(t, tc.parentQuery, parent, nil, nil)
			verifyIterator(t, tc.childQuery, child, nil, nil)

			require.NoError(t, child.Write())
			verifyIterator(t, tc.childQuery, parent, nil, nil)
		})
	}
}

func TestBTreeCacheIteratorRange(t *testing.T) {
	const size = 50
	base := MemStore()
	keys := randKeys(size, 8)
	models := make([]Model, size)
	for i, k := range keys {
		models[i] = Model{Key: k, Value: randBytes(16)}
	}
	// half go to the base, half to the cache on top
	for _, m := range models[:size/2] {
		require.NoError(t, base.Set(m.Key, m.Value))
	}
	cache := base.CacheWrap()
	for _, m := range models[size/2:] {
		require.NoError(t, cache.Set(m.Key, m.Value))
	}

	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	verifyIterator(t, models, cache, nil, nil)
	verifyIterator(t, models[10:], cache, models[10].Key, nil)
	verifyIterator(t, models[:30], cache, nil, models[30].Key)
	verifyIterator(t, models[10:30], cache, models[10].Key, models[30].Key)
}

func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	}
	iter := NewSliceIterator(models)
	for _, m := range models {
		require.True(t, iter.Valid())
		assert.Equal(t, m.Key, iter.Key())
		assert.Equal(t, m.Value, iter.Value())
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	assert.Error(t, iter.Next())
	assert.Panics(t, func() { iter.Key() })
}

func TestNonAtomicBatchOps(t *testing.T) {
	base := MemStore()
	batch := NewNonAtomicBatch(base)
	require.NoError(t, batch.Set([]byte("k"), []byte("v")))
	require.NoError(t, batch.Delete([]byte("gone")))

	ops := batch.ShowOps()
	require.Len(t, ops, 2)
	assert.True(t, ops[0].IsSetOp())
	assert.False(t, ops[1].IsSetOp())
	assert.Equal(t, []byte("gone"), ops[1].Key())

	assertGetHas(t, base, []byte("k"), nil, false)
	require.NoError(t, batch.Write())
	assertGetHas(t, base, []byte("k"), []byte("v"), true)
	assert.Len(t, batch.ShowOps(), 0)
}

func verifyIterator(t *testing.T, want []Model, kv ReadOnlyKVStore, start, end []byte) {
	t.Helper()
	iter, err := kv.Iterator(start, end)
	require.NoError(t, err)
	defer iter.Close()

	var got []Model
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		got = append(got, Model{Key: iter.Key(), Value: iter.Value()})
	}
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Key, got[i].Key)
		assert.Equal(t, want[i].Value, got[i].Value)
	}
}

func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}
