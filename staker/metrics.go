// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"
	"strconv"

	"github.com/vechain/stakevault/metrics"
	"github.com/vechain/stakevault/vault/reverts"
)

var (
	metricIntentCount    = metrics.LazyLoadCounterVec("staker_intent_count", []string{"op", "result"})
	metricPositionsCount = metrics.LazyLoadGauge("staker_positions_count")
	metricTotalStaked    = metrics.LazyLoadGauge("staker_total_staked")
	metricTierPositions  = metrics.LazyLoadGaugeVec("staker_tier_positions", []string{"tier"})
	metricCacheHitRate   = metrics.LazyLoadGauge("staker_cache_hit_permille")
	metricClaimedCount   = metrics.LazyLoadCounter("staker_claimed_rewards_total")
	metricWithdrawnCount = metrics.LazyLoadCounter("staker_withdrawn_total")
)

func observeIntent(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if reverts.IsRevertErr(err) {
			result = "revert"
		}
	}
	metricIntentCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
}

// clamp keeps uint64 amounts inside the gauge range.
func clamp(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

func reportTierPositions(counts map[uint8]uint64) {
	for tier, n := range counts {
		metricTierPositions().SetWithLabel(clamp(n), map[string]string{"tier": strconv.Itoa(int(tier))})
	}
}
