// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/stakevault/api/doc"
	"github.com/vechain/stakevault/api/utils"
	"github.com/vechain/stakevault/staker"
)

// Status reports the aggregates of the vault.
type Status struct {
	staker.Totals
	HistoryEnabled bool   `json:"historyEnabled"`
	Version        string `json:"version"`
}

type Service struct {
	staker *staker.Staker
}

func New(staker *staker.Staker) *Service {
	return &Service{staker}
}

func (s *Service) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &Status{
		Totals:         s.staker.Totals(),
		HistoryEnabled: s.staker.HistoryEnabled(),
		Version:        doc.Version(),
	})
}

func (s *Service) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("status_get_status").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStatus))
}
