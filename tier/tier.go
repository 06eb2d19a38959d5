// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/vault"
)

// Tier is a staking bracket. Stakes of at least MinStake whole tokens earn the
// base rate scaled by Multiplier, expressed in basis points (10_000 = 1x).
type Tier struct {
	Level      uint8  `json:"level" yaml:"-"`
	Name       string `json:"name" yaml:"name"`
	MinStake   uint64 `json:"minStake" yaml:"minStake"`
	Multiplier uint64 `json:"multiplier" yaml:"multiplier"`
}

// MaxMultiplier is the largest accepted tier multiplier, 100x.
const MaxMultiplier = 100 * vault.BasisPoints

// Table is the ordered, immutable list of tiers.
type Table struct {
	tiers []Tier
}

// DefaultTiers returns the Bronze / Silver / Gold table.
func DefaultTiers() []Tier {
	return []Tier{
		{Level: 0, Name: "Bronze", MinStake: 0, Multiplier: vault.BasisPoints},
		{Level: 1, Name: "Silver", MinStake: 1_000, Multiplier: 13_000},
		{Level: 2, Name: "Gold", MinStake: 10_000, Multiplier: 16_000},
	}
}

// NewTable validates the given tiers and builds a table from a copy of them.
// Levels are assigned from the position in the slice.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, errors.New("tier table is empty")
	}
	if len(tiers) > 256 {
		return nil, errors.Errorf("too many tiers: %d", len(tiers))
	}
	names := make(map[string]struct{}, len(tiers))
	cp := make([]Tier, len(tiers))
	for i, t := range tiers {
		if t.Name == "" {
			return nil, errors.Errorf("tier %d: empty name", i)
		}
		if _, dup := names[t.Name]; dup {
			return nil, errors.Errorf("tier %d: duplicated name %q", i, t.Name)
		}
		names[t.Name] = struct{}{}
		if t.Multiplier == 0 || t.Multiplier > MaxMultiplier {
			return nil, errors.Errorf("tier %q: multiplier out of range: %d", t.Name, t.Multiplier)
		}
		if i == 0 && t.MinStake != 0 {
			return nil, errors.Errorf("tier %q: lowest tier must start at 0, got %d", t.Name, t.MinStake)
		}
		if i > 0 && t.MinStake <= tiers[i-1].MinStake {
			return nil, errors.Errorf("tier %q: min stake %d is not above %d", t.Name, t.MinStake, tiers[i-1].MinStake)
		}
		t.Level = uint8(i)
		cp[i] = t
	}
	return &Table{tiers: cp}, nil
}

// MustNewTable is like NewTable but panics on invalid input.
func MustNewTable(tiers []Tier) *Table {
	t, err := NewTable(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the highest tier whose threshold does not exceed amount,
// given in whole tokens. Thresholds are inclusive.
func (t *Table) Classify(amount uint64) Tier {
	for i := len(t.tiers) - 1; i > 0; i-- {
		if t.tiers[i].MinStake <= amount {
			return t.tiers[i]
		}
	}
	return t.tiers[0]
}

// ClassifyMicro classifies an amount of micro-units.
func (t *Table) ClassifyMicro(micro uint64) Tier {
	return t.Classify(vault.ToTokens(micro))
}

// Get returns the tier at the given level.
func (t *Table) Get(level uint8) (Tier, bool) {
	if int(level) >= len(t.tiers) {
		return Tier{}, false
	}
	return t.tiers[level], true
}

// Next returns the tier right above level, false at the top.
func (t *Table) Next(level uint8) (Tier, bool) {
	if int(level)+1 >= len(t.tiers) {
		return Tier{}, false
	}
	return t.tiers[level+1], true
}

func (t *Table) Top() Tier {
	return t.tiers[len(t.tiers)-1]
}

func (t *Table) Len() int {
	return len(t.tiers)
}

// Tiers returns a copy of the table.
func (t *Table) Tiers() []Tier {
	cp := make([]Tier, len(t.tiers))
	copy(cp, t.tiers)
	return cp
}
