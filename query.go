package vaultswap

import (
	"fmt"
)

const (
	// KeyQueryMod is the default query modifier: the data is the exact key.
	KeyQueryMod = ""
	// PrefixQueryMod returns all models whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is one raw key/value pair of a query result, for example an escrow
// under its derived address.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler answers one query path. orm buckets and their indexes
// implement it.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query paths of one extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps paths such as "/escrows" or "/escrows/maker" to their
// handler. Paths match exactly, the "?prefix" modifier is split off by the
// caller.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns an empty router.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll runs every register function on r.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register binds path to h. Two extensions claiming one path is a wiring
// bug and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
