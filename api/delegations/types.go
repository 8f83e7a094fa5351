// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegations

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/econ"
)

type Delegation struct {
	ID          uint64                `json:"id"`
	Holder      econ.Address          `json:"holder"`
	ValidatorID uint64                `json:"validatorId"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Period      uint64                `json:"period"`
	Info        string                `json:"info"`
	Created     uint64                `json:"created"`
	Started     *uint64               `json:"startedEpoch"`
	Finished    *uint64               `json:"finishedEpoch"`
	State       string                `json:"state"`
}

func convertDelegation(id uint64, d *delegation.Delegation, state delegation.State) *Delegation {
	amount := math.HexOrDecimal256(*d.Amount)
	return &Delegation{
		ID:          id,
		Holder:      d.Holder,
		ValidatorID: d.ValidatorID,
		Amount:      &amount,
		Period:      d.Period,
		Info:        d.Info,
		Created:     d.Created,
		Started:     d.Started,
		Finished:    d.Finished,
		State:       state.String(),
	}
}
