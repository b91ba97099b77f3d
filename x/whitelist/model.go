package whitelist

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	vaultBucketName = "wl_vault"
	entryBucketName = "wl_entry"
)

// VaultAddress returns the address of the vault of the admin. It owns the
// token account deposits are sent to.
func VaultAddress(admin vaultswap.Address) vaultswap.Address {
	return vaultswap.DeriveCondition("whitelist", "vault", admin).Address()
}

// EntryAddress returns the address the whitelist entry of user is stored
// under.
func EntryAddress(admin, user vaultswap.Address) vaultswap.Address {
	return vaultswap.DeriveCondition("whitelist", "entry", admin, user).Address()
}

// Vault collects deposits of a single mint for an admin.
type Vault struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Admin    vaultswap.Address   `json:"admin"`
	Mint     vaultswap.Address   `json:"mint"`
	// VaultAccount is the token account owned by the vault address.
	VaultAccount vaultswap.Address `json:"vault_account"`
}

var _ orm.CloneableData = (*Vault)(nil)

// Validate ensures the vault is valid
func (v *Vault) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", v.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", v.Admin.Validate())
	errs = errors.AppendField(errs, "Mint", v.Mint.Validate())
	errs = errors.AppendField(errs, "VaultAccount", v.VaultAccount.Validate())
	if len(v.Admin) != 0 && len(v.Mint) != 0 {
		want := token.AssociatedAddress(VaultAddress(v.Admin), v.Mint)
		if !want.Equals(v.VaultAccount) {
			errs = errors.Append(errs, errors.Field("VaultAccount", errors.ErrInvalidInput, "not the vault token account"))
		}
	}
	return errs
}

// Copy makes a new Vault with the same data
func (v *Vault) Copy() orm.CloneableData {
	return &Vault{
		Metadata:     v.Metadata.Copy(),
		Admin:        append(vaultswap.Address(nil), v.Admin...),
		Mint:         append(vaultswap.Address(nil), v.Mint...),
		VaultAccount: append(vaultswap.Address(nil), v.VaultAccount...),
	}
}

// AsVault extracts a *Vault value or nil from the object
// Must be called on a Bucket result that is a *Vault,
// will panic on bad type.
func AsVault(obj orm.Object) *Vault {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Vault)
}

// NewVault creates the vault of admin for the given mint.
func NewVault(admin, mint vaultswap.Address) orm.Object {
	addr := VaultAddress(admin)
	return orm.NewSimpleObj(addr, &Vault{
		Metadata:     &vaultswap.Metadata{Schema: 1},
		Admin:        admin,
		Mint:         mint,
		VaultAccount: token.AssociatedAddress(addr, mint),
	})
}

// VaultBucket is a type-safe wrapper around orm.Bucket
type VaultBucket struct {
	orm.Bucket
}

// NewVaultBucket initializes a VaultBucket with default name
func NewVaultBucket() VaultBucket {
	b := orm.NewBucket(vaultBucketName, orm.NewSimpleObj(nil, &Vault{})).
		WithIndex("mint", idxVaultMint, false)
	return VaultBucket{Bucket: b}
}

// Save enforces the proper type
func (b VaultBucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Vault); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetVault returns the vault of the admin, ErrNotFound if it was never
// initialised.
func (b VaultBucket) GetVault(db vaultswap.ReadOnlyKVStore, admin vaultswap.Address) (*Vault, error) {
	return b.vaultAt(db, VaultAddress(admin))
}

func (b VaultBucket) vaultAt(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (*Vault, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load vault")
	}
	v := AsVault(obj)
	if v == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "vault %s", addr)
	}
	return v, nil
}

func idxVaultMint(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	v, ok := obj.Value().(*Vault)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Vault")
	}
	return v.Mint, nil
}

// Entry tells whether a user may deposit into the vault of an admin.
type Entry struct {
	Metadata      *vaultswap.Metadata `json:"metadata"`
	Admin         vaultswap.Address   `json:"admin"`
	User          vaultswap.Address   `json:"user"`
	IsWhitelisted bool                `json:"is_whitelisted"`
}

var _ orm.CloneableData = (*Entry)(nil)

// Validate ensures the entry is valid
func (e *Entry) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", e.Admin.Validate())
	errs = errors.AppendField(errs, "User", e.User.Validate())
	return errs
}

// Copy makes a new Entry with the same data
func (e *Entry) Copy() orm.CloneableData {
	return &Entry{
		Metadata:      e.Metadata.Copy(),
		Admin:         append(vaultswap.Address(nil), e.Admin...),
		User:          append(vaultswap.Address(nil), e.User...),
		IsWhitelisted: e.IsWhitelisted,
	}
}

// AsEntry extracts an *Entry value or nil from the object
// Must be called on a Bucket result that is an *Entry,
// will panic on bad type.
func AsEntry(obj orm.Object) *Entry {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Entry)
}

// NewEntry creates an entry stored under its derived address.
func NewEntry(admin, user vaultswap.Address, allowed bool) orm.Object {
	return orm.NewSimpleObj(EntryAddress(admin, user), &Entry{
		Metadata:      &vaultswap.Metadata{Schema: 1},
		Admin:         admin,
		User:          user,
		IsWhitelisted: allowed,
	})
}

// EntryBucket is a type-safe wrapper around orm.Bucket
type EntryBucket struct {
	orm.Bucket
}

// NewEntryBucket initializes an EntryBucket with default name
func NewEntryBucket() EntryBucket {
	b := orm.NewBucket(entryBucketName, orm.NewSimpleObj(nil, &Entry{})).
		WithIndex("admin", idxEntryAdmin, false)
	return EntryBucket{Bucket: b}
}

// Save enforces the proper type
func (b EntryBucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Entry); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// IsWhitelisted reports whether user is allowed to deposit into the vault
// of admin. A missing entry means no.
func (b EntryBucket) IsWhitelisted(db vaultswap.ReadOnlyKVStore, admin, user vaultswap.Address) (bool, error) {
	obj, err := b.Get(db, EntryAddress(admin, user))
	if err != nil {
		return false, errors.Wrap(err, "cannot load entry")
	}
	e := AsEntry(obj)
	return e != nil && e.IsWhitelisted, nil
}

func idxEntryAdmin(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	e, ok := obj.Value().(*Entry)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Entry")
	}
	return e.Admin, nil
}

// RegisterQuery will register the vaults as "/vaults" and the entries as
// "/whitelist".
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewVaultBucket().Register("vaults", qr)
	NewEntryBucket().Register("whitelist", qr)
}
