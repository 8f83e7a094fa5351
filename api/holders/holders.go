// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holders

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/econ"
)

type Holders struct {
	stater *builtin.Stater
}

func New(stater *builtin.Stater) *Holders {
	return &Holders{stater}
}

func (h *Holders) handleGetHolder(w http.ResponseWriter, req *http.Request) error {
	addr, err := econ.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	now, err := utils.ParseTime(req)
	if err != nil {
		return err
	}

	c, release := h.stater.View()
	defer release()

	balance, err := c.Token.BalanceOf(addr)
	if err != nil {
		return err
	}
	locked, err := c.Delegation.CalculateLockedAmount(addr, now)
	if err != nil {
		return err
	}
	delegated, err := c.Delegation.CalculateDelegatedAmount(addr, now)
	if err != nil {
		return err
	}
	purchased, err := c.Delegation.Purchased(addr)
	if err != nil {
		return err
	}
	ids, err := c.Delegation.DelegationsByHolder(addr)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return utils.WriteJSON(w, &Holder{
		Balance:     utils.Amount(balance),
		Locked:      utils.Amount(locked),
		Delegated:   utils.Amount(delegated),
		Purchased:   utils.Amount(purchased),
		Delegations: ids,
	})
}

func (h *Holders) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /holders/{address}").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHolder))
}
