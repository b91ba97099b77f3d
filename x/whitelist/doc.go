/*
Package whitelist restricts who may deposit tokens of a mint into the vault
of an admin.

An admin opens a vault for a mint and maintains a list of users allowed to
deposit. The mint names the "whitelist" transfer hook, so every transfer of
it is checked by this package. Transfers not started by a Deposit are
rejected, deposits from users that are not on the list of the vault admin
are rejected as well.
*/
package whitelist
