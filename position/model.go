// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/reward"
	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
	"github.com/vechain/stakevault/vault/reverts"
)

// ErrBlockRegression is returned when a transition is requested at a block
// older than the last accrual. It indicates a malformed snapshot.
var ErrBlockRegression = errors.New("block height is behind the last accrual")

// Model applies stake, claim and accrual transitions to positions.
// Every operation returns a new value; nothing is persisted.
type Model struct {
	tiers  *tier.Table
	engine *reward.Engine
}

func NewModel(tiers *tier.Table, engine *reward.Engine) *Model {
	return &Model{tiers: tiers, engine: engine}
}

func (m *Model) Tiers() *tier.Table     { return m.tiers }
func (m *Model) Engine() *reward.Engine { return m.engine }

// TierOf returns the tier the staked amount qualifies for.
func (m *Model) TierOf(p Position) tier.Tier {
	return m.tiers.ClassifyMicro(p.StakedAmount)
}

// APY returns the yearly yield in percent currently earned by the position.
func (m *Model) APY(p Position) *big.Rat {
	if p.StakedAmount == 0 {
		return new(big.Rat)
	}
	return m.engine.APY(m.TierOf(p))
}

// Accrue marks the position to currentBlock: rewards for the blocks since the
// last accrual are added under the tier held over that window. Accruing twice
// at the same block is a no-op.
func (m *Model) Accrue(p Position, currentBlock uint64) (Position, error) {
	if currentBlock < p.LastAccrualBlock {
		return p, errors.Wrapf(ErrBlockRegression, "block %d, last accrual %d", currentBlock, p.LastAccrualBlock)
	}
	earned, carry := m.engine.AccrueWithCarry(p.StakedAmount, m.TierOf(p), currentBlock-p.LastAccrualBlock, p.RewardCarry)
	if earned > math.MaxUint64-p.PendingRewards {
		earned = math.MaxUint64 - p.PendingRewards
	}
	p.PendingRewards += earned
	p.RewardCarry = carry
	p.LastAccrualBlock = currentBlock
	return p, nil
}

// Estimate is Accrue for the read side: a block behind the last accrual
// leaves the position as it is, and a principal that never staked stays empty.
func (m *Model) Estimate(p Position, currentBlock uint64) Position {
	if p.IsEmpty() {
		return p
	}
	if next, err := m.Accrue(p, currentBlock); err == nil {
		return next
	}
	return p
}

// ApplyStake accrues under the old amount, then adds amount to the stake and
// reclassifies. The first stake of an empty position opens it at currentBlock.
func (m *Model) ApplyStake(p Position, amount, currentBlock uint64) (Position, error) {
	if amount == 0 {
		return p, reverts.ErrInvalidStakeAmount
	}
	if p.IsEmpty() {
		p.StakeStartBlock = currentBlock
		p.LastAccrualBlock = currentBlock
	}
	return m.ApplyRestake(p, amount, currentBlock)
}

// ApplyRestake returns amount to the earning stake of an open position.
func (m *Model) ApplyRestake(p Position, amount, currentBlock uint64) (Position, error) {
	if amount > math.MaxUint64-p.StakedAmount {
		return p, errors.Wrap(reverts.ErrInvalidStakeAmount, "stake overflows")
	}
	next, err := m.Accrue(p, currentBlock)
	if err != nil {
		return p, err
	}
	next.StakedAmount += amount
	next.Tier = m.TierOf(next).Level
	return next, nil
}

// ApplyUnstake accrues under the old amount, then removes amount from the
// earning stake and reclassifies.
func (m *Model) ApplyUnstake(p Position, amount, currentBlock uint64) (Position, error) {
	if amount == 0 || amount > p.StakedAmount {
		return p, reverts.ErrInvalidWithdrawalAmount
	}
	next, err := m.Accrue(p, currentBlock)
	if err != nil {
		return p, err
	}
	next.StakedAmount -= amount
	next.Tier = m.TierOf(next).Level
	return next, nil
}

// ApplyClaim moves all pending rewards out of the position. Claiming with
// nothing pending is rejected with ErrInsufficientRewards.
func (m *Model) ApplyClaim(p Position) (Position, uint64, error) {
	if p.PendingRewards == 0 {
		return p, 0, reverts.ErrInsufficientRewards
	}
	claimed := p.PendingRewards
	p.PendingRewards = 0
	if claimed > math.MaxUint64-p.ClaimedRewards {
		p.ClaimedRewards = math.MaxUint64
	} else {
		p.ClaimedRewards += claimed
	}
	return p, claimed, nil
}

// Progress describes the distance of a position to the next tier.
type Progress struct {
	Current         tier.Tier  `json:"current"`
	Next            *tier.Tier `json:"next"`
	AmountRemaining uint64     `json:"amountRemaining,string"` // micro-units
	PercentComplete uint64     `json:"percentComplete"`        // basis points
}

// ProgressToNextTier reports how far the stake is from the next threshold.
// Progress is measured from zero, not from the current tier's threshold.
// At the top tier Next is nil and the progress is complete.
func (m *Model) ProgressToNextTier(p Position) Progress {
	current := m.TierOf(p)
	next, ok := m.tiers.Next(current.Level)
	if !ok {
		return Progress{Current: current, PercentComplete: vault.BasisPoints}
	}

	target := new(uint256.Int).Mul(uint256.NewInt(next.MinStake), uint256.NewInt(vault.MicroPerToken))
	staked := uint256.NewInt(p.StakedAmount)

	remaining := new(uint256.Int).Sub(target, staked)
	percent := new(uint256.Int).Mul(staked, uint256.NewInt(vault.BasisPoints))
	percent.Div(percent, target)

	prog := Progress{
		Current:         current,
		Next:            &next,
		AmountRemaining: math.MaxUint64,
		PercentComplete: percent.Uint64(),
	}
	if remaining.IsUint64() {
		prog.AmountRemaining = remaining.Uint64()
	}
	return prog
}

// ValueUSD estimates the dollar value of the stake and pending rewards.
func (m *Model) ValueUSD(p Position, price *big.Rat) string {
	total := p.StakedAmount
	if p.PendingRewards > math.MaxUint64-total {
		total = math.MaxUint64
	} else {
		total += p.PendingRewards
	}
	return vault.FormatUSD(total, price)
}
