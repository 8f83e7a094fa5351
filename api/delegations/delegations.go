// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegations

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin"
)

type Delegations struct {
	stater *builtin.Stater
}

func New(stater *builtin.Stater) *Delegations {
	return &Delegations{stater}
}

func (d *Delegations) handleGetDelegation(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseUint(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	now, err := utils.ParseTime(req)
	if err != nil {
		return err
	}

	c, release := d.stater.View()
	defer release()

	del, err := c.Delegation.GetDelegation(id)
	if err != nil {
		return err
	}
	epoch, err := c.Params.EpochAt(now)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDelegation(id, del, del.StateAt(epoch)))
}

func (d *Delegations) handleGetAllowedPeriods(w http.ResponseWriter, _ *http.Request) error {
	c, release := d.stater.View()
	defer release()

	periods, err := c.Delegation.AllowedPeriods()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, periods)
}

func (d *Delegations) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/periods").
		Methods(http.MethodGet).
		Name("GET /delegations/periods").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetAllowedPeriods))
	sub.Path("/{id:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /delegations/{id}").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetDelegation))
}
