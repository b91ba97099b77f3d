/*
Package vaultswap defines the interfaces shared by every extension of the
ledger application: storage, transactions, handlers, decorators, queries and
the results returned to the consensus engine. It also holds the address and
condition types used to derive accounts that no private key controls.

We pass context through context.Context between app, middleware, and
handlers. To do so, vaultswap defines some common keys to store info, such as
block height and chain id. Each extension, such as sigs, may add its own keys
to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, header).
*/
package vaultswap
