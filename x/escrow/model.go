package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

const bucketName = "escrow"

// State of an escrow. Completed and Refunded are terminal.
type State int32

const (
	StateOpen State = iota + 1
	StateCompleted
	StateRefunded
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateCompleted:
		return "completed"
	case StateRefunded:
		return "refunded"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Condition returns the condition controlling the escrow of maker created
// with the given seed. The seed is encoded as 8 byte little endian.
func Condition(maker vaultswap.Address, seed uint64) vaultswap.Condition {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, seed)
	return vaultswap.DeriveCondition("escrow", "seed", maker, raw)
}

// Address returns the address the escrow of maker and seed is stored under.
// It also owns the vault.
func Address(maker vaultswap.Address, seed uint64) vaultswap.Address {
	return Condition(maker, seed).Address()
}

// Escrow is a pending swap. Once closed, only the fields identifying it are
// kept and State tells how it ended.
type Escrow struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Seed     uint64              `json:"seed"`
	Maker    vaultswap.Address   `json:"maker"`
	MintA    vaultswap.Address   `json:"mint_a"`
	MintB    vaultswap.Address   `json:"mint_b"`
	// Receive is the amount of MintB the maker wants.
	Receive uint64 `json:"receive"`
	// Deposit is the amount of MintA put into the vault by Make.
	Deposit   uint64             `json:"deposit"`
	LockUntil vaultswap.UnixTime `json:"lock_until"`
	Vault     vaultswap.Address  `json:"vault"`
	State     State              `json:"state"`
}

var _ orm.CloneableData = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	switch e.State {
	case StateCompleted, StateRefunded:
		return errs
	case StateOpen:
	default:
		return errors.Append(errs, errors.Field("State", errors.ErrInvalidState, "unknown %d", e.State))
	}

	errs = errors.AppendField(errs, "MintA", e.MintA.Validate())
	errs = errors.AppendField(errs, "MintB", e.MintB.Validate())
	if e.MintA.Equals(e.MintB) {
		errs = errors.Append(errs, errors.Field("MintB", errors.ErrInvalidInput, "same as MintA"))
	}
	if e.Receive == 0 {
		errs = errors.Append(errs, errors.Field("Receive", errors.ErrInvalidAmount, "must be positive"))
	}
	if e.Deposit == 0 {
		errs = errors.Append(errs, errors.Field("Deposit", errors.ErrInvalidAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "LockUntil", e.LockUntil.Validate())
	errs = errors.AppendField(errs, "Vault", e.Vault.Validate())
	return errs
}

// Copy makes a new Escrow with the same data
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Metadata:  e.Metadata.Copy(),
		Seed:      e.Seed,
		Maker:     append(vaultswap.Address(nil), e.Maker...),
		MintA:     append(vaultswap.Address(nil), e.MintA...),
		MintB:     append(vaultswap.Address(nil), e.MintB...),
		Receive:   e.Receive,
		Deposit:   e.Deposit,
		LockUntil: e.LockUntil,
		Vault:     append(vaultswap.Address(nil), e.Vault...),
		State:     e.State,
	}
}

// Address returns the address of this escrow
func (e *Escrow) Address() vaultswap.Address {
	return Address(e.Maker, e.Seed)
}

// Close turns the escrow into a tombstone ending in the given state.
func (e *Escrow) Close(state State) {
	*e = Escrow{
		Metadata: e.Metadata,
		Seed:     e.Seed,
		Maker:    e.Maker,
		State:    state,
	}
}

// AsEscrow extracts an *Escrow value or nil from the object
// Must be called on a Bucket result that is an *Escrow,
// will panic on bad type.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

// NewEscrow creates an escrow orm.Object stored under the derived address.
func NewEscrow(e *Escrow) orm.Object {
	return orm.NewSimpleObj(e.Address(), e)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket with default name
//
// inherit Get and Save from orm.Bucket
// add run-time check on Save
func NewBucket() Bucket {
	b := orm.NewBucket(bucketName, NewEscrow(&Escrow{})).
		WithIndex("maker", idxMaker, false).
		WithIndex("mint_a", idxMintA, false)
	return Bucket{Bucket: b}
}

// Save enforces the proper type
func (b Bucket) Save(db vaultswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Escrow); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetOpen returns the open escrow stored under the given address. A closed
// escrow is reported as not found.
func (b Bucket) GetOpen(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (*Escrow, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow")
	}
	esc := AsEscrow(obj)
	if esc == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	if esc.State != StateOpen {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s is %s", addr, esc.State)
	}
	return esc, nil
}

// ByMaker returns all open escrows of the maker.
func (b Bucket) ByMaker(db vaultswap.ReadOnlyKVStore, maker vaultswap.Address) ([]*Escrow, error) {
	objs, err := b.GetIndexed(db, "maker", maker)
	if err != nil {
		return nil, err
	}
	res := make([]*Escrow, 0, len(objs))
	for _, o := range objs {
		if esc := AsEscrow(o); esc != nil {
			res = append(res, esc)
		}
	}
	return res, nil
}

func toEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Escrow")
	}
	return esc, nil
}

// tombstones are left out of all indexes

func idxMaker(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil || esc.State != StateOpen {
		return nil, err
	}
	return esc.Maker, nil
}

func idxMintA(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil || esc.State != StateOpen {
		return nil, err
	}
	return esc.MintA, nil
}
