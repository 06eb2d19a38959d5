// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package portfolio projects a wallet balance, a position and its withdrawal
// into one read-only snapshot for display.
package portfolio

import (
	"math"
	"math/big"
	"time"

	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
	"github.com/vechain/stakevault/withdrawal"
)

type Input struct {
	WalletBalance uint64
	Position      position.Position
	Withdrawal    *withdrawal.Request // latest request, may be nil or terminal
	CurrentBlock  uint64
	PriceUSD      *big.Rat // optional
}

type Cooldown struct {
	RequestID        string            `json:"requestID"`
	Status           withdrawal.Status `json:"status"`
	Amount           uint64            `json:"amount,string"`
	ReadyBlock       uint64            `json:"readyBlock"`
	BlocksRemaining  uint64            `json:"blocksRemaining"`
	SecondsRemaining uint64            `json:"secondsRemaining"`
	ReadyIn          string            `json:"readyIn"`
}

type Snapshot struct {
	Principal      string            `json:"principal"`
	CurrentBlock   uint64            `json:"currentBlock"`
	WalletBalance  uint64            `json:"walletBalance,string"`
	StakedAmount   uint64            `json:"stakedAmount,string"`
	ReservedAmount uint64            `json:"reservedAmount,string"` // withdrawing, no longer earning
	PendingRewards uint64            `json:"pendingRewards,string"` // projected to CurrentBlock
	ClaimedRewards uint64            `json:"claimedRewards,string"`
	TotalValue     uint64            `json:"totalValue,string"`
	TotalTokens    string            `json:"totalTokens"`
	TotalUSD       string            `json:"totalUSD,omitempty"`
	Tier           tier.Tier         `json:"tier"`
	Progress       position.Progress `json:"progress"`
	EffectiveAPY   string            `json:"effectiveAPY"` // percent
	Cooldown       *Cooldown         `json:"cooldown,omitempty"`
}

type Aggregator struct {
	positions     *position.Model
	blockInterval time.Duration
}

func New(positions *position.Model, blockInterval time.Duration) *Aggregator {
	return &Aggregator{positions: positions, blockInterval: blockInterval}
}

// Build projects the input at in.CurrentBlock. It never fails: a snapshot
// older than the position is shown as of the last accrual.
func (a *Aggregator) Build(in Input) *Snapshot {
	pos := a.positions.Estimate(in.Position, in.CurrentBlock)

	snap := &Snapshot{
		Principal:      pos.Principal,
		CurrentBlock:   in.CurrentBlock,
		WalletBalance:  in.WalletBalance,
		StakedAmount:   pos.StakedAmount,
		PendingRewards: pos.PendingRewards,
		ClaimedRewards: pos.ClaimedRewards,
		Tier:           a.positions.TierOf(pos),
		Progress:       a.positions.ProgressToNextTier(pos),
		EffectiveAPY:   a.positions.APY(pos).FloatString(2),
	}

	if req := in.Withdrawal; req.IsPending() {
		if req.Reserved {
			snap.ReservedAmount = req.Amount
		}
		blocks := req.BlocksRemaining(in.CurrentBlock)
		wait := a.wait(blocks)
		snap.Cooldown = &Cooldown{
			RequestID:        req.ID,
			Status:           req.StatusAt(in.CurrentBlock),
			Amount:           req.Amount,
			ReadyBlock:       req.ReadyBlock(),
			BlocksRemaining:  blocks,
			SecondsRemaining: uint64(wait / time.Second),
			ReadyIn:          wait.String(),
		}
	}

	snap.TotalValue = sum(snap.WalletBalance, snap.StakedAmount, snap.ReservedAmount, snap.PendingRewards)
	snap.TotalTokens = vault.FormatMicro(snap.TotalValue)
	snap.TotalUSD = vault.FormatUSD(snap.TotalValue, in.PriceUSD)
	return snap
}

func (a *Aggregator) wait(blocks uint64) time.Duration {
	if a.blockInterval <= 0 {
		return 0
	}
	if blocks > uint64(math.MaxInt64/int64(a.blockInterval)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(blocks) * a.blockInterval
}

func sum(values ...uint64) uint64 {
	var total uint64
	for _, v := range values {
		if v > math.MaxUint64-total {
			return math.MaxUint64
		}
		total += v
	}
	return total
}
