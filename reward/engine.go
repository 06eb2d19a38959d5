// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
)

// maxBlocksPerYear keeps the accrual denominator within 64 bits, so that the
// carried remainder always fits a uint64.
const maxBlocksPerYear = math.MaxUint64 / (vault.BasisPoints * vault.BasisPoints)

// MaxBaseAPY is 10_000%.
const MaxBaseAPY = 100 * vault.BasisPoints

// Engine computes APY and block-windowed rewards.
//
// Rewards are computed as
//
//	staked * baseAPY * multiplier * blocks / (10_000 * 10_000 * blocksPerYear)
//
// on 256-bit integers. The division remainder is handed back to the caller as
// a carry, so successive ticks never lose precision.
type Engine struct {
	baseAPY       uint64 // basis points
	blocksPerYear uint64
	denominator   *uint256.Int
}

// New creates an engine with the base APY in basis points and the number of
// blocks produced per year.
func New(baseAPY, blocksPerYear uint64) (*Engine, error) {
	if baseAPY == 0 || baseAPY > MaxBaseAPY {
		return nil, errors.Errorf("base APY out of range: %d", baseAPY)
	}
	if blocksPerYear == 0 || blocksPerYear > maxBlocksPerYear {
		return nil, errors.Errorf("blocks per year out of range: %d", blocksPerYear)
	}
	den := uint256.NewInt(vault.BasisPoints)
	den.Mul(den, uint256.NewInt(vault.BasisPoints))
	den.Mul(den, uint256.NewInt(blocksPerYear))
	return &Engine{
		baseAPY:       baseAPY,
		blocksPerYear: blocksPerYear,
		denominator:   den,
	}, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(baseAPY, blocksPerYear uint64) *Engine {
	e, err := New(baseAPY, blocksPerYear)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) BaseAPY() uint64       { return e.baseAPY }
func (e *Engine) BlocksPerYear() uint64 { return e.blocksPerYear }

// APY returns the yearly yield of the tier in percent, e.g. 13/2 for 6.5%.
func (e *Engine) APY(t tier.Tier) *big.Rat {
	num := new(big.Int).Mul(new(big.Int).SetUint64(e.baseAPY), new(big.Int).SetUint64(t.Multiplier))
	// bps/100 => percent, multiplier/10_000 => ratio
	return new(big.Rat).SetFrac(num, big.NewInt(100*int64(vault.BasisPoints)))
}

// APYBasisPoints returns the yearly yield of the tier in basis points, rounded down.
func (e *Engine) APYBasisPoints(t tier.Tier) uint64 {
	num := new(uint256.Int).Mul(uint256.NewInt(e.baseAPY), uint256.NewInt(t.Multiplier))
	num.Div(num, uint256.NewInt(vault.BasisPoints))
	return saturate(num)
}

// Accrue returns the reward earned by staked units over blocksElapsed blocks
// in the given tier, rounded down.
func (e *Engine) Accrue(staked uint64, t tier.Tier, blocksElapsed uint64) uint64 {
	amount, _ := e.AccrueWithCarry(staked, t, blocksElapsed, 0)
	return amount
}

// AccrueWithCarry is Accrue with the remainder of a previous tick folded in.
// It returns the whole reward units and the new remainder, expressed in
// 1/Denominator reward units.
func (e *Engine) AccrueWithCarry(staked uint64, t tier.Tier, blocksElapsed, carry uint64) (uint64, uint64) {
	if staked == 0 || blocksElapsed == 0 {
		return 0, carry
	}
	num := new(uint256.Int).Mul(uint256.NewInt(staked), uint256.NewInt(e.baseAPY))
	num.Mul(num, uint256.NewInt(t.Multiplier))
	num.Mul(num, uint256.NewInt(blocksElapsed))
	num.Add(num, uint256.NewInt(carry))

	quo := new(uint256.Int).Div(num, e.denominator)
	rem := new(uint256.Int).Mod(num, e.denominator)
	return saturate(quo), rem.Uint64()
}

// Denominator returns the scale of a carry.
func (e *Engine) Denominator() uint64 {
	return e.denominator.Uint64()
}

func saturate(v *uint256.Int) uint64 {
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
