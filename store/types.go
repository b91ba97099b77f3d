/*
Package store provides the btree cache-wrap used for transaction savepoints,
batches and an in-memory store for tests. The persistent merkle store lives
in store/iavl.
*/
package store

import "github.com/iov-one/vaultswap"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = vaultswap.ReadOnlyKVStore
	SetDeleter       = vaultswap.SetDeleter
	KVStore          = vaultswap.KVStore
	Batch            = vaultswap.Batch
	Iterator         = vaultswap.Iterator
	CacheableKVStore = vaultswap.CacheableKVStore
	KVCacheWrap      = vaultswap.KVCacheWrap
	CommitKVStore    = vaultswap.CommitKVStore
	CommitID         = vaultswap.CommitID
	Model            = vaultswap.Model
)
