// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/stakevault/api/utils"
	"github.com/vechain/stakevault/position"
)

// Tier is a tier with the yield it earns.
type Tier struct {
	Level          uint8  `json:"level"`
	Name           string `json:"name"`
	MinStake       uint64 `json:"minStake"`   // whole tokens
	Multiplier     uint64 `json:"multiplier"` // basis points
	APY            string `json:"apy"`        // percent
	APYBasisPoints uint64 `json:"apyBasisPoints"`
}

type Tiers struct {
	positions *position.Model
}

func New(positions *position.Model) *Tiers {
	return &Tiers{positions}
}

// List returns the tier table.
func (t *Tiers) List() []Tier {
	engine := t.positions.Engine()
	table := t.positions.Tiers().Tiers()

	list := make([]Tier, 0, len(table))
	for _, tr := range table {
		list = append(list, Tier{
			Level:          tr.Level,
			Name:           tr.Name,
			MinStake:       tr.MinStake,
			Multiplier:     tr.Multiplier,
			APY:            engine.APY(tr).FloatString(2),
			APYBasisPoints: engine.APYBasisPoints(tr),
		})
	}
	return list
}

func (t *Tiers) handleGetTiers(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, t.List())
}

func (t *Tiers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("tiers_get_tiers").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTiers))
}
