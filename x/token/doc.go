/*
Package token implements fungible tokens on top of the orm.

A Mint describes one token type: its decimals, the authority allowed to issue
new tokens and an optional transfer hook. Balances are kept in Accounts. Each
account belongs to exactly one owner and one mint and lives at the associated
address of that pair, so anyone can compute where the tokens of an owner are
kept.

Owners do not need to have a private key. An extension may own accounts
through a derived condition and move tokens out of them by calling the
Controller directly.
*/
package token
