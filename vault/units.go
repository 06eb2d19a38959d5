// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const microDecimals = 6

// ToTokens converts micro-units to whole tokens, rounding down.
func ToTokens(micro uint64) uint64 {
	return micro / MicroPerToken
}

// FromTokens converts whole tokens to micro-units.
// It returns false when the result does not fit into 64 bits.
func FromTokens(tokens uint64) (uint64, bool) {
	if tokens > ^uint64(0)/MicroPerToken {
		return 0, false
	}
	return tokens * MicroPerToken, true
}

// FormatMicro renders an amount of micro-units as a decimal token string,
// trimming trailing zeros of the fraction, e.g. 1500000 => "1.5".
func FormatMicro(micro uint64) string {
	whole := strconv.FormatUint(micro/MicroPerToken, 10)
	frac := micro % MicroPerToken
	if frac == 0 {
		return whole
	}
	fs := strconv.FormatUint(frac, 10)
	fs = strings.Repeat("0", microDecimals-len(fs)) + fs
	return whole + "." + strings.TrimRight(fs, "0")
}

// ParseTokens parses a decimal token string ("12.5") into micro-units.
// At most six fractional digits are accepted.
func ParseTokens(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > microDecimals) {
		return 0, errors.Errorf("invalid fraction in amount %q", s)
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse amount %q", s)
	}
	micro, ok := FromTokens(w)
	if !ok {
		return 0, errors.Errorf("amount %q overflows", s)
	}
	if hasFrac {
		f, err := strconv.ParseUint(frac+strings.Repeat("0", microDecimals-len(frac)), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse amount %q", s)
		}
		if micro > ^uint64(0)-f {
			return 0, errors.Errorf("amount %q overflows", s)
		}
		micro += f
	}
	return micro, nil
}

// FormatUSD values an amount of micro-units at the given token price and
// renders it with two decimals. A nil price yields an empty string.
func FormatUSD(micro uint64, price *big.Rat) string {
	if price == nil {
		return ""
	}
	v := new(big.Rat).SetFrac(new(big.Int).SetUint64(micro), new(big.Int).SetUint64(MicroPerToken))
	return v.Mul(v, price).FloatString(2)
}
