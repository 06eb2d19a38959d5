// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/api/utils"
	"github.com/vechain/stakevault/config"
	"github.com/vechain/stakevault/historydb"
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/staker"
	"github.com/vechain/stakevault/withdrawal"
)

type Positions struct {
	staker       *staker.Staker
	historyLimit uint64
}

func New(staker *staker.Staker, historyLimit uint64) *Positions {
	return &Positions{
		staker,
		historyLimit,
	}
}

// intentError maps failures of the core which are caused by the request.
func intentError(err error) error {
	if errors.Is(err, position.ErrBlockRegression) {
		return utils.BadRequest(err)
	}
	return err
}

func (p *Positions) newPosition(pos position.Position, req *withdrawal.Request) *Position {
	return &Position{
		Position:   pos,
		Withdrawal: req,
		TierName:   p.staker.Model().TierOf(pos).Name,
		APY:        p.staker.Model().APY(pos).FloatString(2),
	}
}

func (p *Positions) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	block, err := utils.QueryUint(req, "block", 0)
	if err != nil {
		return err
	}
	pos, wr, err := p.staker.Position(mux.Vars(req)["principal"], block)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, p.newPosition(pos, wr))
}

func (p *Positions) handleGetPortfolio(w http.ResponseWriter, req *http.Request) error {
	block, err := utils.QueryUint(req, "block", 0)
	if err != nil {
		return err
	}
	wallet, err := utils.QueryUint(req, "wallet", 0)
	if err != nil {
		return err
	}
	price, err := config.ParsePrice(req.URL.Query().Get("price"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "price"))
	}
	snap, err := p.staker.Portfolio(mux.Vars(req)["principal"], wallet, block, price)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, snap)
}

func (p *Positions) handleGetHistory(w http.ResponseWriter, req *http.Request) error {
	filter := &historydb.Filter{Principal: mux.Vars(req)["principal"]}

	query := req.URL.Query()
	if query.Get("from") != "" || query.Get("to") != "" {
		from, err := utils.QueryUint(req, "from", 0)
		if err != nil {
			return err
		}
		to, err := utils.QueryUint(req, "to", ^uint64(0))
		if err != nil {
			return err
		}
		if to < from {
			return utils.BadRequest(errors.New("to: less than from"))
		}
		filter.Range = &historydb.Range{From: from, To: to}
	}

	switch order := historydb.Order(query.Get("order")); order {
	case "", historydb.ASC, historydb.DESC:
		filter.Order = order
	default:
		return utils.BadRequest(errors.Errorf("order: invalid value %q", order))
	}

	for _, kind := range query["kind"] {
		filter.Kinds = append(filter.Kinds, historydb.Kind(kind))
	}

	offset, err := utils.QueryUint(req, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := utils.QueryUint(req, "limit", p.historyLimit)
	if err != nil {
		return err
	}
	if limit > p.historyLimit {
		return utils.BadRequest(errors.Errorf("limit: exceeds maximum %d", p.historyLimit))
	}
	filter.Options = &historydb.Options{Offset: offset, Limit: limit}

	events, err := p.staker.History(req.Context(), filter)
	if err != nil {
		if errors.Is(err, staker.ErrNoHistory) {
			return utils.NotFound(err)
		}
		return err
	}
	if events == nil {
		events = []*historydb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (p *Positions) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	pos, wr, err := p.staker.Stake(mux.Vars(req)["principal"], body.Amount, body.Block)
	if err != nil {
		return intentError(err)
	}
	return utils.WriteJSON(w, p.newPosition(pos, wr))
}

func (p *Positions) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body BlockRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	pos, claimed, err := p.staker.Claim(mux.Vars(req)["principal"], body.Block)
	if err != nil {
		return intentError(err)
	}
	return utils.WriteJSON(w, &ClaimResult{Position: pos, Claimed: claimed})
}

func (p *Positions) handleRequestWithdrawal(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	pos, wr, err := p.staker.RequestWithdrawal(mux.Vars(req)["principal"], body.Amount, body.Block)
	if err != nil {
		return intentError(err)
	}
	return utils.WriteJSON(w, &WithdrawalResult{Position: pos, Withdrawal: wr})
}

func (p *Positions) handleCompleteWithdrawal(w http.ResponseWriter, req *http.Request) error {
	var body BlockRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	pos, wr, amount, err := p.staker.CompleteWithdrawal(mux.Vars(req)["principal"], body.Block)
	if err != nil {
		return intentError(err)
	}
	return utils.WriteJSON(w, &WithdrawalResult{Position: pos, Withdrawal: wr, Amount: amount})
}

func (p *Positions) handleCancelWithdrawal(w http.ResponseWriter, req *http.Request) error {
	var body BlockRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	pos, wr, err := p.staker.CancelWithdrawal(mux.Vars(req)["principal"], body.Block)
	if err != nil {
		return intentError(err)
	}
	return utils.WriteJSON(w, &WithdrawalResult{Position: pos, Withdrawal: wr})
}

func (p *Positions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{principal}").
		Methods(http.MethodGet).
		Name("positions_get_position").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
	sub.Path("/{principal}/portfolio").
		Methods(http.MethodGet).
		Name("positions_get_portfolio").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPortfolio))
	sub.Path("/{principal}/history").
		Methods(http.MethodGet).
		Name("positions_get_history").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetHistory))
	sub.Path("/{principal}/stake").
		Methods(http.MethodPost).
		Name("positions_stake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake))
	sub.Path("/{principal}/claim").
		Methods(http.MethodPost).
		Name("positions_claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
	sub.Path("/{principal}/withdrawals").
		Methods(http.MethodPost).
		Name("positions_request_withdrawal").
		HandlerFunc(utils.WrapHandlerFunc(p.handleRequestWithdrawal))
	sub.Path("/{principal}/withdrawals/complete").
		Methods(http.MethodPost).
		Name("positions_complete_withdrawal").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCompleteWithdrawal))
	sub.Path("/{principal}/withdrawals/cancel").
		Methods(http.MethodPost).
		Name("positions_cancel_withdrawal").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCancelWithdrawal))
}
