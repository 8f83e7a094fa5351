// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin"
)

type Params struct {
	stater *builtin.Stater
}

func New(stater *builtin.Stater) *Params {
	return &Params{stater}
}

func (p *Params) handleGetPeriods(w http.ResponseWriter, req *http.Request) error {
	now, err := utils.ParseTime(req)
	if err != nil {
		return err
	}
	c, release := p.stater.View()
	defer release()

	periods, err := c.Params.Periods()
	if err != nil {
		return err
	}
	clock, err := c.Params.Clock()
	if err != nil {
		return err
	}
	epoch := clock.EpochAt(now)
	return utils.WriteJSON(w, &Periods{
		RewardPeriod:    periods.RewardPeriod,
		DeltaPeriod:     periods.DeltaPeriod,
		CheckTime:       periods.CheckTime,
		LaunchTimestamp: periods.LaunchTimestamp,
		Epoch:           epoch,
		EpochStart:      clock.EpochStart(epoch),
	})
}

func (p *Params) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /periods").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPeriods))
}
