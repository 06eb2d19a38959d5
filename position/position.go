// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

// Position is the stake record of a principal. Amounts are in micro-units;
// rewards are paid in the staked asset.
type Position struct {
	Principal        string `json:"principal"`
	StakedAmount     uint64 `json:"stakedAmount,string"`
	StakeStartBlock  uint64 `json:"stakeStartBlock"`
	Tier             uint8  `json:"tier"`
	PendingRewards   uint64 `json:"pendingRewards,string"`
	RewardCarry      uint64 `json:"rewardCarry,string"` // sub-unit remainder of the last accrual
	LastAccrualBlock uint64 `json:"lastAccrualBlock"`
	ClaimedRewards   uint64 `json:"claimedRewards,string"` // lifetime total
}

// New returns the empty position of a principal.
func New(principal string) Position {
	return Position{Principal: principal}
}

// IsEmpty returns whether the position holds nothing and never accrued.
func (p Position) IsEmpty() bool {
	return p == Position{Principal: p.Principal}
}

// Normalize resets a position whose stake and pending rewards are both
// drained. Callers must not normalize while a withdrawal still reserves stake.
func Normalize(p Position) Position {
	if p.StakedAmount == 0 && p.PendingRewards == 0 {
		return New(p.Principal)
	}
	return p
}
