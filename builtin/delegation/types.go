// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"fmt"
	"math/big"

	"github.com/vechain/econ/econ"
)

type State uint8

const (
	StateProposed State = iota
	StateAccepted
	StateCanceled
	StateRejected
	StateDelegated
	StateEndingDelegated
	StateCompleted
)

var stateNames = [...]string{
	StateProposed:        "proposed",
	StateAccepted:        "accepted",
	StateCanceled:        "canceled",
	StateRejected:        "rejected",
	StateDelegated:       "delegated",
	StateEndingDelegated: "ending_delegated",
	StateCompleted:       "completed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Locks reports whether delegations in the state count toward the locked amount.
func (s State) Locks() bool {
	switch s {
	case StateProposed, StateAccepted, StateDelegated, StateEndingDelegated:
		return true
	}
	return false
}

// Delegates reports whether the amount is actively delegated in the state.
func (s State) Delegates() bool {
	return s == StateDelegated || s == StateEndingDelegated
}

type Delegation struct {
	Holder       econ.Address
	ValidatorID  uint64
	Amount       *big.Int
	Period       uint64 // in epochs
	Info         string
	Created      uint64
	CreatedEpoch uint64
	Started      *uint64 `rlp:"nil"` // first delegated epoch, set on accept
	Finished     *uint64 `rlp:"nil"` // first completed epoch, set on undelegation request
	Canceled     bool
}

// IsEmpty returns whether the entry can be treated as empty.
func (d *Delegation) IsEmpty() bool {
	return d.Holder.IsZero()
}

// StateAt projects the state of the delegation in the given epoch.
func (d *Delegation) StateAt(epoch uint64) State {
	if d.Canceled {
		return StateCanceled
	}
	if d.Started == nil {
		if epoch > d.CreatedEpoch {
			return StateRejected
		}
		return StateProposed
	}
	if epoch < *d.Started {
		return StateAccepted
	}
	if d.Finished == nil {
		return StateDelegated
	}
	if epoch < *d.Finished {
		return StateEndingDelegated
	}
	return StateCompleted
}

// holder is the per holder index and token sale record.
type holder struct {
	Delegations []uint64
	Purchased   *big.Int
}

func (h *holder) purchased() *big.Int {
	if h.Purchased == nil {
		return new(big.Int)
	}
	return h.Purchased
}

type validatorIndex struct {
	Delegations []uint64
}

// StateChanged is sent after every explicit transition.
type StateChanged struct {
	ID   uint64
	From State
	To   State
	Time uint64
}
