// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/kv"
	"github.com/vechain/econ/state"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64
	policy    bounty.EmissionPolicy
	procs     []func(c *builtin.Contracts) error
}

// Timestamp set the time genesis operations run at.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// Policy set the emission policy bound at genesis.
func (b *Builder) Policy(p bounty.EmissionPolicy) *Builder {
	b.policy = p
	return b
}

// State add a state process.
func (b *Builder) State(proc func(c *builtin.Contracts) error) *Builder {
	b.procs = append(b.procs, proc)
	return b
}

// Build runs the processes on a fresh state over store and commits it.
func (b *Builder) Build(store kv.Store) (*builtin.Contracts, error) {
	st := state.New(store)
	contracts := builtin.New(st, b.policy)

	for _, proc := range b.procs {
		if err := proc(contracts); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	if err := st.Stage().Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	return contracts, nil
}
