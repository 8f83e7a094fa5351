// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, limit uint64) *Events {
	return &Events{db, limit}
}

func (e *Events) handleFilterPrices(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req, e.limit)
	if err != nil {
		return err
	}
	prices, err := e.db.FilterPrices(req.Context(), filter)
	if err != nil {
		return err
	}
	res := make([]*PriceChanged, 0, len(prices))
	for _, p := range prices {
		res = append(res, convertPrice(p))
	}
	return utils.WriteJSON(w, res)
}

func (e *Events) handleFilterBounties(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req, e.limit)
	if err != nil {
		return err
	}
	bf := &logdb.BountyFilter{Filter: *filter}
	if s := req.URL.Query().Get("node"); s != "" {
		node, err := utils.ParseUint(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "node"))
		}
		bf.NodeID = &node
	}
	bounties, err := e.db.FilterBounties(req.Context(), bf)
	if err != nil {
		return err
	}
	res := make([]*BountyPaid, 0, len(bounties))
	for _, b := range bounties {
		res = append(res, convertBounty(b))
	}
	return utils.WriteJSON(w, res)
}

func (e *Events) handleFilterStateChanges(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req, e.limit)
	if err != nil {
		return err
	}
	sf := &logdb.StateChangeFilter{Filter: *filter}
	if s := req.URL.Query().Get("id"); s != "" {
		id, err := utils.ParseUint(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "id"))
		}
		sf.DelegationID = &id
	}
	changes, err := e.db.FilterStateChanges(req.Context(), sf)
	if err != nil {
		return err
	}
	res := make([]*StateChanged, 0, len(changes))
	for _, c := range changes {
		res = append(res, convertStateChange(c))
	}
	return utils.WriteJSON(w, res)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/prices").
		Methods(http.MethodGet).
		Name("GET /events/prices").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilterPrices))
	sub.Path("/bounties").
		Methods(http.MethodGet).
		Name("GET /events/bounties").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilterBounties))
	sub.Path("/delegations").
		Methods(http.MethodGet).
		Name("GET /events/delegations").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilterStateChanges))
}
