/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity under the "_c:<pkg>" key.
It is created from the "conf" section of the genesis file and may later be
changed by the configuration owner with an update message.

Not being able to load a configuration is a critical condition for an
extension that depends on it. Handlers return the error and the transaction
is rejected until the chain is configured correctly.
*/
package gconf
