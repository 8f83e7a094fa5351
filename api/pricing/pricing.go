// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricing

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin"
)

type Pricing struct {
	stater *builtin.Stater
}

func New(stater *builtin.Stater) *Pricing {
	return &Pricing{stater}
}

func (p *Pricing) handleGetPricing(w http.ResponseWriter, _ *http.Request) error {
	c, release := p.stater.View()
	defer release()

	s, err := c.Pricing.State()
	if err != nil {
		return err
	}
	load, err := c.Pricing.TotalLoadPercentage()
	if err != nil {
		return err
	}
	res := &PriceState{
		Load:        load,
		LastUpdated: s.LastUpdated,
		TotalNodes:  s.TotalNodes,
		LastLoad:    s.LastLoad,
	}
	if s.Price != nil {
		res.Price = utils.Amount(s.Price.ToBig())
	}
	return utils.WriteJSON(w, res)
}

func (p *Pricing) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pricing").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPricing))
}
