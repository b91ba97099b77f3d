/*
Package errors implements the error types used across vaultswap.

Every error returned by a handler wraps one of the root errors registered in
this package or by an extension (see Register). The root error carries an
ABCI code so clients can distinguish failures, for example an escrow that is
still locked from one that does not exist.

Wrap an error at the point of creation to attach a stacktrace:

	return errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)

Once you have an error, you can use fmt to get more context for it:
	%s is just the error message
	%+v is the full stack trace

Use the Is method of a root error to test an error kind, no matter how many
times it was wrapped.
*/
package errors
