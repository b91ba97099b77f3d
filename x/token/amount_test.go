package token

import (
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/vaultswaptest/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		text     string
		decimals uint32
		want     uint64
		wantErr  *errors.Error
	}{
		"whole amount":          {text: "10", decimals: 6, want: 10000000},
		"fraction":              {text: "10.5", decimals: 6, want: 10500000},
		"smallest unit":         {text: "0.000001", decimals: 6, want: 1},
		"no decimals":           {text: "42", decimals: 0, want: 42},
		"too many decimals":     {text: "0.0000001", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"fraction on integer":   {text: "1.5", decimals: 0, wantErr: errors.ErrInvalidAmount},
		"missing whole part":    {text: ".5", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"missing fraction":      {text: "5.", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"negative":              {text: "-1", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"garbage":               {text: "ten", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"overflow":              {text: "18446744073709.551616", decimals: 6, wantErr: errors.ErrOverflow},
		"max value":             {text: "18446744073709.551615", decimals: 6, want: 18446744073709551615},
		"too precise mint":      {text: "1", decimals: 19, wantErr: errors.ErrInvalidInput},
		"empty":                 {text: "", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"second decimal point":  {text: "1.2.3", decimals: 6, wantErr: errors.ErrInvalidAmount},
		"leading zeros are ok":  {text: "007", decimals: 2, want: 700},
		"full precision amount": {text: "1.123456789012345678", decimals: 18, want: 1123456789012345678},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.text, tc.decimals)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]struct {
		amount   uint64
		decimals uint32
		want     string
	}{
		"whole":          {amount: 10000000, decimals: 6, want: "10"},
		"fraction":       {amount: 10500000, decimals: 6, want: "10.5"},
		"below one":      {amount: 1, decimals: 6, want: "0.000001"},
		"zero":           {amount: 0, decimals: 6, want: "0"},
		"no decimals":    {amount: 42, decimals: 0, want: "42"},
		"exact decimals": {amount: 123456, decimals: 6, want: "0.123456"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FormatAmount(tc.amount, tc.decimals)
			assert.Equal(t, tc.want, got)

			back, err := ParseAmount(got, tc.decimals)
			assert.Nil(t, err)
			assert.Equal(t, tc.amount, back)
		})
	}
}
