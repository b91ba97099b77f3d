package vrf

import (
	"encoding/binary"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

const (
	// RandomnessLength is the size of a VRF output.
	RandomnessLength = 32

	bucketName = "vrf_user"
)

// UserAddress returns the address the account of owner is stored under.
func UserAddress(owner vaultswap.Address) vaultswap.Address {
	return vaultswap.DeriveCondition("vrf", "user", owner).Address()
}

// UserAccount holds the last random value delivered for its owner.
type UserAccount struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Owner    vaultswap.Address   `json:"owner"`
	Data     uint64              `json:"data"`
}

var _ orm.CloneableData = (*UserAccount)(nil)

// Validate ensures the account is valid
func (u *UserAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", u.Owner.Validate())
	return errs
}

// Copy makes a new UserAccount with the same data
func (u *UserAccount) Copy() orm.CloneableData {
	return &UserAccount{
		Metadata: u.Metadata.Copy(),
		Owner:    append(vaultswap.Address(nil), u.Owner...),
		Data:     u.Data,
	}
}

// Consume stores the first eight bytes of the randomness, read as a little
// endian number.
func (u *UserAccount) Consume(randomness []byte) error {
	if len(randomness) != RandomnessLength {
		return errors.Wrapf(errors.ErrInvalidInput, "randomness of %d bytes", len(randomness))
	}
	u.Data = binary.LittleEndian.Uint64(randomness[:8])
	return nil
}

// AsUserAccount extracts a *UserAccount value or nil from the object
// Must be called on a Bucket result that is a *UserAccount,
// will panic on bad type.
func AsUserAccount(obj orm.Object) *UserAccount {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserAccount)
}

// NewUserAccount creates an empty account of owner.
func NewUserAccount(owner vaultswap.Address) orm.Object {
	return orm.NewSimpleObj(UserAddress(owner), &UserAccount{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Owner:    owner,
	})
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(bucketName, orm.NewSimpleObj(nil, &UserAccount{})),
	}
}

// Save enforces the proper type
func (b Bucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*UserAccount); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetUser returns the account of owner.
func (b Bucket) GetUser(db vaultswap.ReadOnlyKVStore, owner vaultswap.Address) (*UserAccount, error) {
	obj, err := b.Get(db, UserAddress(owner))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load user")
	}
	u := AsUserAccount(obj)
	if u == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %s", owner)
	}
	return u, nil
}
