package orm

import (
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), NewCounter("alice", -999))
	b := NewBucket("counters", o)

	db := store.MemStore()
	if err := b.Save(db, o); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("invalid object must not save: %s", err)
	}
	if err := b.Save(db, NewSimpleObj(nil, NewCounter("alice", 1))); !errors.ErrEmpty.Is(err) {
		t.Fatalf("object without a key must not save: %s", err)
	}
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("counters", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()
	key := []byte("first")

	obj, err := b.Get(db, key)
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, NewSimpleObj(key, NewCounter("alice", 848))))

	has, err := b.Has(db, key)
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	obj, err = b.Get(db, key)
	assert.Nil(t, err)
	assert.Equal(t, key, obj.Key())
	assert.Equal(t, int64(848), obj.Value().(*Counter).Count)

	// the raw value is stored under the prefixed key
	raw, err := db.Get([]byte("counters:first"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("value not stored under the bucket prefix")
	}

	assert.Nil(t, b.Delete(db, key))
	obj, err = b.Get(db, key)
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketParseForeignData(t *testing.T) {
	b := NewBucket("counters", NewSimpleObj(nil, &Counter{}))
	if _, err := b.Parse([]byte("k"), []byte{0xff, 0xff, 0xff}); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBucketIndex(t *testing.T) {
	b := NewBucket("counters", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", byOwner, false)
	db := store.MemStore()

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), NewCounter("alice", 1))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("b"), NewCounter("alice", 2))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("c"), NewCounter("bob", 3))))

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
	assert.Equal(t, []byte("a"), objs[0].Key())
	assert.Equal(t, []byte("b"), objs[1].Key())

	// moving an entry to another owner updates both index entries
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("b"), NewCounter("bob", 2))))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	// delete cleans up the index
	assert.Nil(t, b.Delete(db, []byte("a")))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	if _, err := b.GetIndexed(db, "missing", []byte("alice")); !ErrInvalidIndex.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBucketUniqueIndex(t *testing.T) {
	b := NewBucket("counters", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", byOwner, true)
	db := store.MemStore()

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), NewCounter("alice", 1))))
	// saving the same object again keeps the index valid
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), NewCounter("alice", 5))))

	err := b.Save(db, NewSimpleObj([]byte("b"), NewCounter("alice", 2)))
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unique index must reject a second owner entry: %v", err)
	}
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("counters", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", byOwner, false)
	qr := vaultswap.NewQueryRouter()
	b.Register("", qr)

	db := store.MemStore()
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("aa"), NewCounter("alice", 1))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("ab"), NewCounter("bob", 2))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("bc"), NewCounter("bob", 3))))

	cases := map[string]struct {
		path     string
		mod      string
		data     []byte
		wantKeys []string
		wantErr  *errors.Error
	}{
		"by key": {
			path:     "/counters",
			data:     []byte("ab"),
			wantKeys: []string{"counters:ab"},
		},
		"key miss": {
			path: "/counters",
			data: []byte("zz"),
		},
		"by prefix": {
			path:     "/counters",
			mod:      vaultswap.PrefixQueryMod,
			data:     []byte("a"),
			wantKeys: []string{"counters:aa", "counters:ab"},
		},
		"by index": {
			path:     "/counters/owner",
			data:     []byte("bob"),
			wantKeys: []string{"counters:ab", "counters:bc"},
		},
		"by index prefix": {
			path:     "/counters/owner",
			mod:      vaultswap.PrefixQueryMod,
			data:     []byte("b"),
			wantKeys: []string{"counters:ab", "counters:bc"},
		},
		"unknown mod": {
			path:    "/counters",
			mod:     "range",
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("no handler for %s", tc.path)
			}
			models, err := h.Query(db, tc.mod, tc.data)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			var keys []string
			for _, m := range models {
				keys = append(keys, string(m.Key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}
