// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker persists positions and withdrawal requests and applies
// intents to them through the accounting core.
package staker

import (
	"context"
	"math"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/cache"
	"github.com/vechain/stakevault/config"
	"github.com/vechain/stakevault/historydb"
	"github.com/vechain/stakevault/kv"
	"github.com/vechain/stakevault/log"
	"github.com/vechain/stakevault/portfolio"
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/withdrawal"
)

var logger = log.WithContext("pkg", "staker")

// ErrNoHistory is returned by History when the staker runs without a history db.
var ErrNoHistory = errors.New("history is not enabled")

const defaultCacheSize = 1024

// Staker is the single writer of the vault state. Intents are applied one at
// a time; reads are served from an LRU cache in front of the store.
type Staker struct {
	mu      sync.RWMutex
	db      kv.Store
	history *historydb.HistoryDB // optional
	cache   *cache.LRU[string, record]

	positions  *position.Model
	machine    *withdrawal.Machine
	aggregator *portfolio.Aggregator
	price      *big.Rat

	totals        Totals
	tierPositions map[uint8]uint64
	newID         func() string
}

// Totals are the aggregates over all stored positions.
type Totals struct {
	Positions      uint64 `json:"positions"`
	StakedAmount   uint64 `json:"stakedAmount,string"`
	PendingRewards uint64 `json:"pendingRewards,string"` // as of each position's last accrual
}

// New creates a staker over db configured by cfg. history may be nil.
func New(db kv.Store, history *historydb.HistoryDB, cfg *config.Config) (*Staker, error) {
	table, err := cfg.TierTable()
	if err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	price, err := cfg.Price()
	if err != nil {
		return nil, err
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	lru, err := cache.NewLRU[string, record](size)
	if err != nil {
		return nil, errors.Wrap(err, "new cache")
	}

	model := position.NewModel(table, engine)
	s := &Staker{
		db:         db,
		history:    history,
		cache:      lru,
		positions:  model,
		machine:    withdrawal.NewMachine(model, cfg.CooldownBlocks, mode),
		aggregator: portfolio.New(model, cfg.BlockInterval),
		price:      price,
		newID:      uuid.New,
	}

	if s.totals, s.tierPositions, err = scanTotals(db); err != nil {
		return nil, err
	}
	s.reportTotals()
	logger.Info("staker ready",
		"positions", s.totals.Positions,
		"staked", s.totals.StakedAmount,
		"reserveMode", mode,
		"cooldown", cfg.CooldownBlocks)
	return s, nil
}

// Model returns the position model the staker applies intents with.
func (s *Staker) Model() *position.Model { return s.positions }

// Machine returns the withdrawal state machine.
func (s *Staker) Machine() *withdrawal.Machine { return s.machine }

// HistoryEnabled reports whether activity is recorded.
func (s *Staker) HistoryEnabled() bool { return s.history != nil }

// Totals returns the aggregates over all positions.
func (s *Staker) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Stake adds amount to the position of principal at block. The outstanding
// withdrawal request, if any, is returned alongside.
func (s *Staker) Stake(principal string, amount, block uint64) (pos position.Position, req *withdrawal.Request, err error) {
	defer func() { observeIntent("stake", err) }()
	logger.Debug("stake", "principal", principal, "amount", amount, "block", block)

	err = s.apply(principal, func(rec record) (record, *historydb.Event, error) {
		next, err := s.positions.ApplyStake(rec.Position, amount, block)
		if err != nil {
			return rec, nil, err
		}
		rec.Position = next
		return rec, s.event(historydb.KindStake, next, block, amount, ""), nil
	}, func(rec record) { pos, req = rec.Position, rec.Withdrawal })
	return
}

// Claim pays out all pending rewards of principal at block.
func (s *Staker) Claim(principal string, block uint64) (pos position.Position, claimed uint64, err error) {
	defer func() { observeIntent("claim", err) }()
	logger.Debug("claim", "principal", principal, "block", block)

	err = s.apply(principal, func(rec record) (record, *historydb.Event, error) {
		next, err := s.positions.Accrue(rec.Position, block)
		if err != nil {
			return rec, nil, err
		}
		if next, claimed, err = s.positions.ApplyClaim(next); err != nil {
			return rec, nil, err
		}
		if !rec.Withdrawal.IsPending() {
			next = position.Normalize(next)
		}
		rec.Position = next
		return rec, s.event(historydb.KindClaim, next, block, claimed, ""), nil
	}, func(rec record) { pos = rec.Position })
	if err == nil {
		metricClaimedCount().Add(clamp(claimed))
		logger.Info("rewards claimed", "principal", principal, "amount", claimed, "block", block)
	}
	return
}

// RequestWithdrawal opens a withdrawal of amount for principal at block.
func (s *Staker) RequestWithdrawal(principal string, amount, block uint64) (pos position.Position, req *withdrawal.Request, err error) {
	defer func() { observeIntent("request_withdrawal", err) }()
	logger.Debug("request withdrawal", "principal", principal, "amount", amount, "block", block)

	err = s.apply(principal, func(rec record) (record, *historydb.Event, error) {
		next, r, err := s.machine.Request(rec.Position, rec.Withdrawal, amount, block)
		if err != nil {
			return rec, nil, err
		}
		r.ID = s.newID()
		rec.Position, rec.Withdrawal = next, r
		return rec, s.event(historydb.KindWithdrawalRequested, next, block, amount, r.ID), nil
	}, func(rec record) { pos, req = rec.Position, rec.Withdrawal })
	if err == nil {
		logger.Info("withdrawal requested", "principal", principal, "id", req.ID, "amount", amount, "readyBlock", req.ReadyBlock())
	}
	return
}

// CompleteWithdrawal finalizes the ready withdrawal of principal at block and
// returns the amount released.
func (s *Staker) CompleteWithdrawal(principal string, block uint64) (pos position.Position, req *withdrawal.Request, amount uint64, err error) {
	defer func() { observeIntent("complete_withdrawal", err) }()
	logger.Debug("complete withdrawal", "principal", principal, "block", block)

	err = s.apply(principal, func(rec record) (record, *historydb.Event, error) {
		next, r, released, err := s.machine.Complete(rec.Position, rec.Withdrawal, block)
		if err != nil {
			return rec, nil, err
		}
		amount = released
		rec.Position, rec.Withdrawal = next, r
		return rec, s.event(historydb.KindWithdrawalCompleted, next, block, released, r.ID), nil
	}, func(rec record) { pos, req = rec.Position, rec.Withdrawal })
	if err == nil {
		metricWithdrawnCount().Add(clamp(amount))
		logger.Info("withdrawal completed", "principal", principal, "id", req.ID, "amount", amount)
	}
	return
}

// CancelWithdrawal aborts the pending withdrawal of principal at block.
func (s *Staker) CancelWithdrawal(principal string, block uint64) (pos position.Position, req *withdrawal.Request, err error) {
	defer func() { observeIntent("cancel_withdrawal", err) }()
	logger.Debug("cancel withdrawal", "principal", principal, "block", block)

	err = s.apply(principal, func(rec record) (record, *historydb.Event, error) {
		next, r, err := s.machine.Cancel(rec.Position, rec.Withdrawal, block)
		if err != nil {
			return rec, nil, err
		}
		rec.Position, rec.Withdrawal = next, r
		return rec, s.event(historydb.KindWithdrawalCancelled, next, block, r.Amount, r.ID), nil
	}, func(rec record) { pos, req = rec.Position, rec.Withdrawal })
	if err == nil {
		logger.Info("withdrawal cancelled", "principal", principal, "id", req.ID)
	}
	return
}

// Position returns the position of principal projected to block, and its
// latest withdrawal request. Nothing is written.
func (s *Staker) Position(principal string, block uint64) (position.Position, *withdrawal.Request, error) {
	rec, err := s.read(principal)
	if err != nil {
		return position.Position{}, nil, err
	}
	return s.positions.Estimate(rec.Position, block), rec.Withdrawal, nil
}

// Portfolio builds the portfolio snapshot of principal at block. A nil price
// falls back to the configured one.
func (s *Staker) Portfolio(principal string, walletBalance, block uint64, price *big.Rat) (*portfolio.Snapshot, error) {
	rec, err := s.read(principal)
	if err != nil {
		return nil, err
	}
	if price == nil {
		price = s.price
	}
	return s.aggregator.Build(portfolio.Input{
		WalletBalance: walletBalance,
		Position:      rec.Position,
		Withdrawal:    rec.Withdrawal,
		CurrentBlock:  block,
		PriceUSD:      price,
	}), nil
}

// History returns the recorded activity matching filter.
func (s *Staker) History(ctx context.Context, filter *historydb.Filter) ([]*historydb.Event, error) {
	if s.history == nil {
		return nil, ErrNoHistory
	}
	return s.history.Filter(ctx, filter)
}

func (s *Staker) read(principal string) (record, error) {
	if principal == "" {
		return record{}, errors.New("empty principal")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.cache.GetOrLoad(principal, func(principal string) (record, error) {
		return loadRecord(s.db, principal)
	})
	if err != nil {
		return rec, err
	}
	return rec.clone(), nil
}

// apply runs fn on the current record of principal, commits the result
// atomically and hands a copy of it to done.
func (s *Staker) apply(principal string, fn func(record) (record, *historydb.Event, error), done func(record)) error {
	if principal == "" {
		return errors.New("empty principal")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.cache.GetOrLoad(principal, func(principal string) (record, error) {
		return loadRecord(s.db, principal)
	})
	if err != nil {
		return err
	}

	next, ev, err := fn(prev.clone())
	if err != nil {
		return err
	}

	if err := s.db.Batch(func(p kv.Putter) error {
		return saveRecord(p, next)
	}); err != nil {
		return errors.Wrap(err, "commit record")
	}
	s.cache.Add(principal, next)
	s.updateTotals(prev.Position, next.Position)

	if s.history != nil && ev != nil {
		if err := s.history.Insert(ev); err != nil {
			// state is committed; the history is best effort
			logger.Warn("failed to record history", "principal", principal, "kind", ev.Kind, "err", err)
		}
	}
	done(next.clone())
	return nil
}

func (s *Staker) event(kind historydb.Kind, p position.Position, block, amount uint64, requestID string) *historydb.Event {
	return &historydb.Event{
		Principal:   p.Principal,
		Kind:        kind,
		BlockNumber: block,
		Amount:      amount,
		RequestID:   requestID,
		StakedAfter: p.StakedAmount,
		Tier:        p.Tier,
	}
}

func (s *Staker) updateTotals(prev, next position.Position) {
	switch {
	case prev.IsEmpty() && !next.IsEmpty():
		s.totals.Positions++
	case !prev.IsEmpty() && next.IsEmpty():
		s.totals.Positions--
	}
	s.totals.StakedAmount = adjust(s.totals.StakedAmount, prev.StakedAmount, next.StakedAmount)
	s.totals.PendingRewards = adjust(s.totals.PendingRewards, prev.PendingRewards, next.PendingRewards)
	if !prev.IsEmpty() && s.tierPositions[prev.Tier] > 0 {
		s.tierPositions[prev.Tier]--
	}
	if !next.IsEmpty() {
		s.tierPositions[next.Tier]++
	}
	s.reportTotals()
}

func (s *Staker) reportTotals() {
	metricPositionsCount().Set(clamp(s.totals.Positions))
	metricTotalStaked().Set(clamp(s.totals.StakedAmount))
	reportTierPositions(s.tierPositions)
	if permille, changed := s.cache.Stats().Permille(); changed {
		metricCacheHitRate().Set(permille)
	}
}

// adjust replaces from by to in total, saturating at the uint64 bounds.
func adjust(total, from, to uint64) uint64 {
	if to >= from {
		d := to - from
		if total > math.MaxUint64-d {
			return math.MaxUint64
		}
		return total + d
	}
	d := from - to
	if total < d {
		return 0
	}
	return total - d
}

// scanTotals sums every stored position, and counts them per tier.
func scanTotals(db kv.Store) (Totals, map[uint8]uint64, error) {
	var (
		totals    Totals
		tiers     = make(map[uint8]uint64)
		decodeErr error
	)
	if err := positionsBucket.NewStore(db).Iterate(kv.Range{}, func(pair kv.Pair) bool {
		var p position.Position
		if decodeErr = rlp.DecodeBytes(pair.Value(), &p); decodeErr != nil {
			decodeErr = errors.Wrapf(decodeErr, "decode position %q", pair.Key())
			return false
		}
		totals.Positions++
		tiers[p.Tier]++
		totals.StakedAmount = adjust(totals.StakedAmount, 0, p.StakedAmount)
		totals.PendingRewards = adjust(totals.PendingRewards, 0, p.PendingRewards)
		return true
	}); err != nil {
		return totals, tiers, errors.Wrap(err, "scan positions")
	}
	return totals, tiers, decodeErr
}
