package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// ResultSet holds a list of raw keys or values returned by a query. It is
// encoded as a protobuf message with a single repeated bytes field.
type ResultSet struct {
	Results [][]byte
}

// field 1, wire type 2 (length delimited)
const resultsKey = 1<<3 | 2

// Marshal encodes the results as protobuf.
func (r *ResultSet) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	for _, res := range r.Results {
		if err := buf.EncodeVarint(resultsKey); err != nil {
			return nil, errors.Wrap(err, "encode key")
		}
		if err := buf.EncodeRawBytes(res); err != nil {
			return nil, errors.Wrap(err, "encode result")
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes results produced by Marshal.
func (r *ResultSet) Unmarshal(bz []byte) error {
	r.Results = nil
	for len(bz) > 0 {
		key, n := proto.DecodeVarint(bz)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "malformed result set key")
		}
		if key != resultsKey {
			return errors.Wrapf(errors.ErrInvalidInput, "unexpected result set key %d", key)
		}
		bz = bz[n:]

		size, n := proto.DecodeVarint(bz)
		if n == 0 || size > uint64(len(bz)-n) {
			return errors.Wrap(errors.ErrInvalidInput, "malformed result set length")
		}
		bz = bz[n:]
		r.Results = append(r.Results, append([]byte{}, bz[:size]...))
		bz = bz[size:]
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []vaultswap.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []vaultswap.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]vaultswap.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInvalidState, "mismatched result set size")
	}
	mods := make([]vaultswap.Model, len(kref))
	for i := range mods {
		mods[i] = vaultswap.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o vaultswap.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
