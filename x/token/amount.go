package token

import (
	"strconv"
	"strings"

	"github.com/iov-one/vaultswap/errors"
)

// ParseAmount converts a decimal text like "10.5" into the integer amount of
// the smallest unit of a mint with the given decimals. More fractional
// digits than decimals is an error.
func ParseAmount(text string, decimals uint32) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "decimals %d", decimals)
	}
	whole, frac := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		whole, frac = text[:i], text[i+1:]
		if frac == "" {
			return 0, errors.Wrapf(errors.ErrInvalidAmount, "%q", text)
		}
	}
	if whole == "" {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "%q", text)
	}
	if uint32(len(frac)) > decimals {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "%q has more than %d decimals", text, decimals)
	}
	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	val, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errors.Wrapf(errors.ErrOverflow, "%q", text)
		}
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "%q", text)
	}
	return val, nil
}

// FormatAmount renders an amount of the smallest unit as decimal text.
// Trailing fractional zeros are dropped.
func FormatAmount(amount uint64, decimals uint32) string {
	s := strconv.FormatUint(amount, 10)
	if decimals == 0 {
		return s
	}
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole, frac := s[:len(s)-d], strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
