package app

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// CommitStore wraps the persistent iavl (or memory) store with one cache for
// DeliverTx and one for CheckTx. Both caches are rebuilt on Commit.
type CommitStore struct {
	committed vaultswap.CommitKVStore
	deliver   vaultswap.KVCacheWrap
	check     vaultswap.KVCacheWrap
}

// NewCommitStore loads the latest committed version. It panics when the
// store cannot be read, since no block can run without it.
func NewCommitStore(store vaultswap.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the height and app hash of the last commit.
func (cs *CommitStore) CommitInfo() (vaultswap.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the block writes and starts fresh caches. Pending CheckTx
// state is dropped, so mempool transactions are checked again against the
// new state.
func (cs *CommitStore) Commit() (vaultswap.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vaultswap.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore is the cache CheckTx runs on.
func (cs *CommitStore) CheckStore() vaultswap.CacheableKVStore {
	return cs.check
}

// DeliverStore is the cache DeliverTx and InitChain write to.
func (cs *CommitStore) DeliverStore() vaultswap.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives under the "_vs:" prefix, next to no bucket.
const chainIDKey = "_vs:chainID"

// mustLoadChainID returns the stored chain id, or "" before genesis.
func mustLoadChainID(kv vaultswap.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID writes the chain id once. The id is part of every sign bytes,
// so it cannot change after genesis.
func saveChainID(kv vaultswap.KVStore, chainID string) error {
	if !vaultswap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chainId")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chainId")
	}
	return nil
}
