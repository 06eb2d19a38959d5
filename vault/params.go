// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import "time"

// Constants of the staking network.
const (
	BlockInterval  time.Duration = 10 * time.Minute // average time between two consecutive blocks.
	BlocksPerDay   uint64        = 144
	BlocksPerYear  uint64        = BlocksPerDay * 365
	CooldownBlocks uint64        = 144 // blocks between a withdrawal request and its completion.

	MicroPerToken uint64 = 1_000_000 // smallest on-chain unit per whole token.
	BasisPoints   uint64 = 10_000    // 100%, also the 1x tier multiplier.

	DefaultBaseAPY uint64 = 500 // 5% in basis points.
)

// TokenSymbol is the ticker of the staked asset.
const TokenSymbol = "STX"
