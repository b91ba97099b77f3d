/*
Package escrow implements a two party token swap.

The maker locks tokens of one mint in a vault and names how many tokens of a
second mint they want in return. Any taker who pays that amount to the maker
receives the whole vault. Until a taker shows up the maker may refund the
deposit at any time.

Every escrow lives at an address derived from the maker and a seed of their
choice. The vault is the associated token account of that address, so only
this extension can move tokens out of it.

A new escrow cannot be taken before its lock period is over. The lock period
is part of the escrow configuration and defaults to five days.

Taking or refunding an escrow closes the vault and leaves a tombstone under the
escrow address. The same maker and seed can never be used again.
*/
package escrow
