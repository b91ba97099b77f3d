/*
Package x holds what extensions share: the Authenticator that tells a
handler who signed the transaction, and the small interfaces models and
messages implement.

Every sub-package is one extension. Extensions register their handlers on
the router and their buckets on the query router; they only talk to each
other through controllers passed into their constructors.
*/
package x
