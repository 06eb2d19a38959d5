// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb

// Kind is the type of a recorded position activity.
type Kind string

const (
	KindStake               Kind = "stake"
	KindClaim               Kind = "claim"
	KindWithdrawalRequested Kind = "withdrawal_requested"
	KindWithdrawalCompleted Kind = "withdrawal_completed"
	KindWithdrawalCancelled Kind = "withdrawal_cancelled"
)

// Event is one activity on a position.
type Event struct {
	Seq         uint64 `json:"seq"` // assigned on insert
	Principal   string `json:"principal"`
	Kind        Kind   `json:"kind"`
	BlockNumber uint64 `json:"blockNumber"`
	Amount      uint64 `json:"amount,string"`
	RequestID   string `json:"requestID,omitempty"`
	StakedAfter uint64 `json:"stakedAfter,string"` // staked amount once the activity applied
	Tier        uint8  `json:"tier"`
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block range. A To lower than From leaves the range open.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects the events of one principal.
type Filter struct {
	Principal string
	Kinds     []Kind // any kind when empty
	Range     *Range
	Options   *Options
	Order     Order // default asc
}

// uniqueKinds drops repeated kinds, keeping the first occurrence order.
func uniqueKinds(kinds []Kind) []Kind {
	if len(kinds) < 2 {
		return kinds
	}
	seen := make(map[Kind]struct{}, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
