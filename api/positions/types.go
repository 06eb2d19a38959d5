// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/withdrawal"
)

// AmountRequest is the body of the stake and withdrawal request intents.
type AmountRequest struct {
	Amount uint64 `json:"amount,string"` // micro-units
	Block  uint64 `json:"block"`
}

// BlockRequest is the body of the claim, complete and cancel intents.
type BlockRequest struct {
	Block uint64 `json:"block"`
}

// Position is a position with its latest withdrawal request.
type Position struct {
	Position   position.Position   `json:"position"`
	Withdrawal *withdrawal.Request `json:"withdrawal,omitempty"`
	TierName   string              `json:"tierName"`
	APY        string              `json:"apy"` // percent
}

// ClaimResult is the outcome of a claim.
type ClaimResult struct {
	Position position.Position `json:"position"`
	Claimed  uint64            `json:"claimed,string"`
}

// WithdrawalResult is the outcome of a withdrawal intent. Amount is set once
// the withdrawal completes.
type WithdrawalResult struct {
	Position   position.Position   `json:"position"`
	Withdrawal *withdrawal.Request `json:"withdrawal"`
	Amount     uint64              `json:"amount,omitempty,string"`
}
