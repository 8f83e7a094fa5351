// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/kv"
	"github.com/vechain/econ/state"
)

// Stater opens read-only contract views over committed state.
type Stater struct {
	store  kv.Store
	policy bounty.EmissionPolicy
}

func NewStater(store kv.Store, policy bounty.EmissionPolicy) *Stater {
	return &Stater{store, policy}
}

// View binds the contracts to a snapshot of the store. The returned func releases
// the snapshot and must be called once the view is no longer used.
func (s *Stater) View() (*Contracts, func()) {
	snap := s.store.Snapshot()
	return New(state.NewReadOnly(snap), s.policy), snap.Release
}
