package orm

import (
	"github.com/iov-one/vaultswap/errors"
)

// Counter is a model used only by the tests of this package.
type Counter struct {
	Owner []byte `json:"owner"`
	Count int64  `json:"count"`
}

var _ CloneableData = (*Counter)(nil)

func NewCounter(owner string, count int64) *Counter {
	return &Counter{Owner: []byte(owner), Count: count}
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Owner: append([]byte(nil), c.Owner...), Count: c.Count}
}

func (c *Counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func byOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}
