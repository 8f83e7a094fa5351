// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nodes

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin"
)

type Nodes struct {
	stater *builtin.Stater
}

func New(stater *builtin.Stater) *Nodes {
	return &Nodes{stater}
}

func (n *Nodes) handleGetBounty(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseUint(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	now, err := utils.ParseTime(req)
	if err != nil {
		return err
	}

	c, release := n.stater.View()
	defer release()

	node, err := c.Nodes.Node(id)
	if err != nil {
		return err
	}
	if node == nil {
		return utils.NotFound(fmt.Errorf("node %d does not exist", id))
	}
	epoch, err := c.Params.EpochAt(now)
	if err != nil {
		return err
	}
	next, err := c.Bounty.NextRewardDate(id)
	if err != nil {
		return err
	}
	claimAt, err := c.Bounty.NextClaimTime(id)
	if err != nil {
		return err
	}
	estimate, err := c.Bounty.EstimateBounty(id, now)
	if err != nil {
		return err
	}
	res := &Bounty{
		NodeID:         id,
		ValidatorID:    node.ValidatorID,
		Exited:         node.Exited,
		Epoch:          epoch,
		NextRewardDate: next,
		NextClaimTime:  claimAt,
		Estimate:       utils.Amount(estimate),
	}
	record, err := c.Bounty.Record(id, epoch)
	if err != nil {
		return err
	}
	if record != nil {
		res.Claimed = utils.Amount(record.Amount)
	}
	return utils.WriteJSON(w, res)
}

func (n *Nodes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id:[0-9]+}/bounty").
		Methods(http.MethodGet).
		Name("GET /nodes/{id}/bounty").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetBounty))
}
