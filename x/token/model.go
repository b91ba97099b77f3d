package token

import (
	"regexp"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

const (
	// MaxDecimals is the greatest precision a mint may declare. 10^18 still
	// fits in an uint64 amount.
	MaxDecimals = 18

	mintBucketName    = "mint"
	accountBucketName = "account"
)

var (
	isSymbol   = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}$`).MatchString
	isHookName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// MintCondition returns the condition a mint address is derived from. One
// authority may create many mints, one per symbol.
func MintCondition(authority vaultswap.Address, symbol string) vaultswap.Condition {
	return vaultswap.DeriveCondition("token", "mint", authority, []byte(symbol))
}

// MintAddress returns the address of the mint created by authority under the
// given symbol.
func MintAddress(authority vaultswap.Address, symbol string) vaultswap.Address {
	return MintCondition(authority, symbol).Address()
}

// AssociatedAddress returns the address of the token account holding the
// tokens of given mint for owner.
func AssociatedAddress(owner, mint vaultswap.Address) vaultswap.Address {
	return vaultswap.DeriveCondition("token", "assoc", owner, mint).Address()
}

// Mint describes a single token type.
type Mint struct {
	Metadata  *vaultswap.Metadata `json:"metadata"`
	Symbol    string              `json:"symbol"`
	Decimals  uint32              `json:"decimals"`
	Authority vaultswap.Address   `json:"authority"`
	Supply    uint64              `json:"supply"`
	// TransferHook is the name of a registered hook called after each
	// transfer of this mint. Empty means no hook.
	TransferHook string `json:"transfer_hook"`
}

var _ orm.CloneableData = (*Mint)(nil)

// Validate ensures the mint is valid
func (m *Mint) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !isSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrInvalidInput)
	}
	if m.Decimals > MaxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInvalidInput, "at most 18"))
	}
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if m.TransferHook != "" && !isHookName(m.TransferHook) {
		errs = errors.AppendField(errs, "TransferHook", errors.ErrInvalidInput)
	}
	return errs
}

// Copy makes a new Mint with the same data
func (m *Mint) Copy() orm.CloneableData {
	return &Mint{
		Metadata:     m.Metadata.Copy(),
		Symbol:       m.Symbol,
		Decimals:     m.Decimals,
		Authority:    append(vaultswap.Address(nil), m.Authority...),
		Supply:       m.Supply,
		TransferHook: m.TransferHook,
	}
}

// AsMint safely extracts a Mint from a bucket result. Returns nil on a miss.
func AsMint(obj orm.Object) *Mint {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Mint)
}

// MintBucket keeps all mints under their derived address.
type MintBucket struct {
	orm.Bucket
}

// NewMintBucket initializes a MintBucket with default name
func NewMintBucket() MintBucket {
	return MintBucket{
		Bucket: orm.NewBucket(mintBucketName, orm.NewSimpleObj(nil, &Mint{})),
	}
}

// Save enforces the proper type
func (b MintBucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Mint); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// Account holds the balance of a single owner for a single mint.
type Account struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Mint     vaultswap.Address   `json:"mint"`
	Owner    vaultswap.Address   `json:"owner"`
	Amount   uint64              `json:"amount"`
}

var _ orm.CloneableData = (*Account)(nil)

// Validate ensures the account is valid
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	return errs
}

// Copy makes a new Account with the same data
func (a *Account) Copy() orm.CloneableData {
	return &Account{
		Metadata: a.Metadata.Copy(),
		Mint:     append(vaultswap.Address(nil), a.Mint...),
		Owner:    append(vaultswap.Address(nil), a.Owner...),
		Amount:   a.Amount,
	}
}

// AsAccount safely extracts an Account from a bucket result. Returns nil on
// a miss.
func AsAccount(obj orm.Object) *Account {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Account)
}

// NewAccount returns an empty account object stored at the associated
// address of owner and mint.
func NewAccount(owner, mint vaultswap.Address) orm.Object {
	acc := &Account{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Mint:     mint,
		Owner:    owner,
	}
	return orm.NewSimpleObj(AssociatedAddress(owner, mint), acc)
}

// AccountBucket keeps all token accounts, indexed by owner and by mint.
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket initializes an AccountBucket with default name
func NewAccountBucket() AccountBucket {
	b := orm.NewBucket(accountBucketName, orm.NewSimpleObj(nil, &Account{})).
		WithIndex("owner", idxOwner, false).
		WithIndex("mint", idxMint, false)
	return AccountBucket{Bucket: b}
}

// Save enforces the proper type
func (b AccountBucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Account); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// ByOwner returns all accounts of the given owner, one per mint.
func (b AccountBucket) ByOwner(db vaultswap.ReadOnlyKVStore, owner vaultswap.Address) ([]*Account, error) {
	objs, err := b.GetIndexed(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	res := make([]*Account, 0, len(objs))
	for _, o := range objs {
		if acc := AsAccount(o); acc != nil {
			res = append(res, acc)
		}
	}
	return res, nil
}

func toAccount(obj orm.Object) (*Account, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Account")
	}
	return acc, nil
}

func idxOwner(obj orm.Object) ([]byte, error) {
	acc, err := toAccount(obj)
	if err != nil {
		return nil, err
	}
	return acc.Owner, nil
}

func idxMint(obj orm.Object) ([]byte, error) {
	acc, err := toAccount(obj)
	if err != nil {
		return nil, err
	}
	return acc.Mint, nil
}

// RegisterQuery exposes mints under "/mints" and token accounts under
// "/accounts", "/accounts/owner" and "/accounts/mint".
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
}
