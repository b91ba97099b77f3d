package vrf

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
	"github.com/iov-one/vaultswap/orm"
	"github.com/iov-one/vaultswap/x"
)

const (
	createUserCost int64 = 100
	callbackCost   int64 = 20
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathCreateUserMsg, CreateUserHandler{auth, bucket})
	r.Handle(pathCallbackMsg, CallbackHandler{auth, bucket})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// RegisterQuery will register this bucket as "/vrf_users"
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewBucket().Register("vrf_users", qr)
}

// CreateUserHandler creates the account of the signer.
type CreateUserHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ vaultswap.Handler = CreateUserHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateUserHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: createUserCost}, nil
}

// Deliver stores an account with no data yet.
func (h CreateUserHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewUserAccount(owner)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store user")
	}
	return &vaultswap.DeliverResult{Data: obj.Key()}, nil
}

func (h CreateUserHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (vaultswap.Address, error) {
	var msg CreateUserMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	owner := signer.Address()
	switch exists, err := h.bucket.Has(db, UserAddress(owner)); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check user")
	case exists:
		return nil, errors.Wrap(errors.ErrDuplicate, "user")
	}
	return owner, nil
}

// CallbackHandler writes the delivered randomness into a user account.
type CallbackHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ vaultswap.Handler = CallbackHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CallbackHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: callbackCost}, nil
}

// Deliver stores the new random value.
func (h CallbackHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, user, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := user.Consume(msg.Randomness); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, orm.NewSimpleObj(UserAddress(user.Owner), user)); err != nil {
		return nil, errors.Wrap(err, "cannot store user")
	}
	return &vaultswap.DeliverResult{}, nil
}

func (h CallbackHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*CallbackMsg, *UserAccount, error) {
	var msg CallbackMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no vrf identity configured")
	case err != nil:
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Identity) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the vrf identity can deliver randomness")
	}
	user, err := h.bucket.GetUser(db, msg.User)
	if err != nil {
		return nil, nil, err
	}
	return &msg, user, nil
}
