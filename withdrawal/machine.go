// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package withdrawal

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/vault/reverts"
)

// ReserveMode decides when a requested amount stops earning rewards.
type ReserveMode uint8

const (
	// ReserveOnRequest removes the amount from the earning stake when the
	// withdrawal is requested.
	ReserveOnRequest ReserveMode = iota
	// ReserveOnCompletion keeps the amount earning during the cooldown and
	// removes it when the withdrawal completes.
	ReserveOnCompletion
)

func (m ReserveMode) String() string {
	switch m {
	case ReserveOnRequest:
		return "request"
	case ReserveOnCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// ParseReserveMode parses "request" or "completion".
func ParseReserveMode(s string) (ReserveMode, error) {
	switch s {
	case "", "request":
		return ReserveOnRequest, nil
	case "completion":
		return ReserveOnCompletion, nil
	}
	return 0, errors.Errorf("invalid reserve mode %q", s)
}

// Machine drives withdrawal requests through
//
//	Requested -> Ready -> Completed
//	Requested | Ready -> Cancelled
//
// The Requested -> Ready edge is a pure function of the block height.
type Machine struct {
	positions      *position.Model
	cooldownBlocks uint64
	mode           ReserveMode
}

func NewMachine(positions *position.Model, cooldownBlocks uint64, mode ReserveMode) *Machine {
	return &Machine{
		positions:      positions,
		cooldownBlocks: cooldownBlocks,
		mode:           mode,
	}
}

func (m *Machine) CooldownBlocks() uint64 { return m.cooldownBlocks }
func (m *Machine) Mode() ReserveMode      { return m.mode }

// Request opens a withdrawal of amount from p. outstanding is the latest
// request of the position, if any.
func (m *Machine) Request(p position.Position, outstanding *Request, amount, currentBlock uint64) (position.Position, *Request, error) {
	if amount == 0 || amount > p.StakedAmount {
		return p, nil, reverts.ErrInvalidWithdrawalAmount
	}
	if outstanding.IsPending() {
		return p, nil, reverts.ErrWithdrawalAlreadyPending
	}

	req := &Request{
		Principal:      p.Principal,
		Amount:         amount,
		RequestBlock:   currentBlock,
		CooldownBlocks: m.cooldownBlocks,
		Reserved:       m.mode == ReserveOnRequest,
		Status:         StatusRequested,
	}

	if req.Reserved {
		next, err := m.positions.ApplyUnstake(p, amount, currentBlock)
		if err != nil {
			return p, nil, err
		}
		return next, req, nil
	}

	next, err := m.positions.Accrue(p, currentBlock)
	if err != nil {
		return p, nil, err
	}
	return next, req, nil
}

// Complete finalizes a ready request and returns the withdrawn amount, which
// leaves the position for good.
func (m *Machine) Complete(p position.Position, r *Request, currentBlock uint64) (position.Position, *Request, uint64, error) {
	if !r.IsPending() {
		return p, r, 0, reverts.ErrWithdrawalNotPending
	}
	if r.StatusAt(currentBlock) != StatusReady {
		return p, r, 0, reverts.ErrCooldownNotElapsed
	}

	var (
		next position.Position
		err  error
	)
	if r.Reserved {
		next, err = m.positions.Accrue(p, currentBlock)
	} else {
		next, err = m.positions.ApplyUnstake(p, r.Amount, currentBlock)
	}
	if err != nil {
		return p, r, 0, errors.Wrap(err, "release withdrawn stake")
	}

	done := *r
	done.Status = StatusCompleted
	done.FinalBlock = currentBlock
	return position.Normalize(next), &done, r.Amount, nil
}

// Cancel aborts a pending request. A reserved amount goes back to the
// earning stake and the tier is recomputed. Either way the position is marked
// to currentBlock, which must not precede its last accrual.
func (m *Machine) Cancel(p position.Position, r *Request, currentBlock uint64) (position.Position, *Request, error) {
	if !r.IsPending() {
		return p, r, reverts.ErrWithdrawalNotPending
	}

	var (
		next position.Position
		err  error
	)
	if r.Reserved {
		next, err = m.positions.ApplyRestake(p, r.Amount, currentBlock)
	} else {
		next, err = m.positions.Accrue(p, currentBlock)
	}
	if err != nil {
		return p, r, err
	}

	done := *r
	done.Status = StatusCancelled
	done.FinalBlock = currentBlock
	return next, &done, nil
}
