package orm

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr vaultswap.Iterator) ([]vaultswap.Model, error) {
	defer itr.Close()

	var res []vaultswap.Model
	for itr.Valid() {
		res = append(res, vaultswap.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		})
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// queryPrefix returns all models stored under keys starting with prefix.
func queryPrefix(db vaultswap.ReadOnlyKVStore, prefix []byte) ([]vaultswap.Model, error) {
	start, end := prefixRange(prefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "prefix iterator")
	}
	return ConsumeIterator(itr)
}

// RegisterQuery exposes the raw store under "/". Use it to look up any key
// when no bucket matches.
func RegisterQuery(qr vaultswap.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db vaultswap.ReadOnlyKVStore, mod string, data []byte) ([]vaultswap.Model, error) {
	switch mod {
	case vaultswap.KeyQueryMod:
		val, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if val == nil {
			return nil, nil
		}
		return []vaultswap.Model{vaultswap.Pair(data, val)}, nil
	case vaultswap.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}
