// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package withdrawal

import (
	"math"

	"github.com/pkg/errors"
)

type Status uint8

const (
	StatusUnknown   Status = iota // 0 -> default value
	StatusRequested               // waiting for the cooldown
	StatusReady                   // cooldown elapsed, never stored
	StatusCompleted               // amount left the position
	StatusCancelled               // amount returned to the stake
)

var statusNames = map[Status]string{
	StatusUnknown:   "unknown",
	StatusRequested: "requested",
	StatusReady:     "ready",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return errors.Errorf("invalid withdrawal status %q", text)
}

// IsTerminal returns whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Request is a withdrawal of part or all of a position's stake.
// Only Requested, Completed and Cancelled are stored; Ready is derived from
// the block height on read.
type Request struct {
	ID             string `json:"id"`
	Principal      string `json:"principal"`
	Amount         uint64 `json:"amount,string"`
	RequestBlock   uint64 `json:"requestBlock"`
	CooldownBlocks uint64 `json:"cooldownBlocks"`
	Reserved       bool   `json:"reserved"` // whether Amount left the earning stake at request time
	Status         Status `json:"status"`
	FinalBlock     uint64 `json:"finalBlock,omitempty"` // block of completion or cancellation
}

// ReadyBlock returns the first block at which the request can be completed.
func (r *Request) ReadyBlock() uint64 {
	if r.RequestBlock > math.MaxUint64-r.CooldownBlocks {
		return math.MaxUint64
	}
	return r.RequestBlock + r.CooldownBlocks
}

// IsPending returns whether the request still awaits completion or cancellation.
func (r *Request) IsPending() bool {
	return r != nil && r.Status == StatusRequested
}

// StatusAt evaluates the status of the request at the given block.
func (r *Request) StatusAt(currentBlock uint64) Status {
	if r == nil {
		return StatusUnknown
	}
	if r.Status == StatusRequested && currentBlock >= r.ReadyBlock() {
		return StatusReady
	}
	return r.Status
}

// BlocksRemaining returns how many blocks are left before the cooldown elapses.
func (r *Request) BlocksRemaining(currentBlock uint64) uint64 {
	if !r.IsPending() || currentBlock >= r.ReadyBlock() {
		return 0
	}
	return r.ReadyBlock() - currentBlock
}
