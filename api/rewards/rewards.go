// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/api/utils"
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
)

// Estimate is the reward a fresh stake would earn.
type Estimate struct {
	Amount       uint64    `json:"amount,string"`
	Blocks       uint64    `json:"blocks"`
	Tier         tier.Tier `json:"tier"`
	APY          string    `json:"apy"`
	Reward       uint64    `json:"reward,string"`
	RewardTokens string    `json:"rewardTokens"`
}

type Rewards struct {
	positions *position.Model
}

func New(positions *position.Model) *Rewards {
	return &Rewards{positions}
}

// Estimate projects the reward of staking amount micro-units for blocks.
func (r *Rewards) Estimate(amount, blocks uint64) *Estimate {
	t := r.positions.Tiers().ClassifyMicro(amount)
	engine := r.positions.Engine()
	reward := engine.Accrue(amount, t, blocks)
	return &Estimate{
		Amount:       amount,
		Blocks:       blocks,
		Tier:         t,
		APY:          engine.APY(t).FloatString(2),
		Reward:       reward,
		RewardTokens: vault.FormatMicro(reward),
	}
}

func (r *Rewards) handleEstimate(w http.ResponseWriter, req *http.Request) error {
	if req.URL.Query().Get("amount") == "" {
		return utils.BadRequest(errors.New("amount: required"))
	}
	amount, err := utils.QueryUint(req, "amount", 0)
	if err != nil {
		return err
	}
	blocks, err := utils.QueryUint(req, "blocks", r.positions.Engine().BlocksPerYear())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, r.Estimate(amount, blocks))
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("rewards_get_estimate").
		HandlerFunc(utils.WrapHandlerFunc(r.handleEstimate))
}
