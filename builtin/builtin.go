// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the economic contracts to fixed addresses of one state.
package builtin

import (
	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/builtin/nodes"
	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/builtin/pricing"
	"github.com/vechain/econ/builtin/roles"
	"github.com/vechain/econ/builtin/token"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/state"
)

// Builtin contracts binding.
var (
	Roles      = &contract{econ.BytesToAddress([]byte("Roles"))}
	Params     = &contract{econ.BytesToAddress([]byte("Params"))}
	Nodes      = &contract{econ.BytesToAddress([]byte("Nodes"))}
	Token      = &contract{econ.BytesToAddress([]byte("Token"))}
	Pricing    = &contract{econ.BytesToAddress([]byte("Pricing"))}
	Bounty     = &contract{econ.BytesToAddress([]byte("Bounty"))}
	Delegation = &contract{econ.BytesToAddress([]byte("Delegation"))}
)

type contract struct {
	Address econ.Address
}

// Contracts is the set of services sharing one state.
type Contracts struct {
	State      *state.State
	Roles      *roles.Roles
	Params     *params.Params
	Nodes      *nodes.Nodes
	Token      *token.Token
	Pricing    *pricing.Pricing
	Bounty     *bounty.Bounty
	Delegation *delegation.Service
}

// New binds every contract to st. A nil policy selects the default emission schedule.
func New(st *state.State, policy bounty.EmissionPolicy) *Contracts {
	r := roles.New(Roles.Address, st)
	p := params.New(Params.Address, st, r)
	n := nodes.New(Nodes.Address, st, r)
	t := token.New(Token.Address, st)
	d := delegation.New(Delegation.Address, st, validatorLookup{n}, t, r, p)
	t.SetLocker(d)

	return &Contracts{
		State:   st,
		Roles:   r,
		Params:  p,
		Nodes:   n,
		Token:   t,
		Pricing: pricing.New(Pricing.Address, st, n, r, p),
		Bounty: bounty.New(Bounty.Address, st, bounty.Options{
			Nodes:      nodeLookup{n},
			Validators: n,
			Minter:     t,
			Roles:      r,
			Clock:      p,
			Policy:     policy,
		}),
		Delegation: d,
	}
}

type nodeLookup struct {
	*nodes.Nodes
}

func (l nodeLookup) LookupNode(nodeID uint64) (*bounty.Node, error) {
	n, err := l.Node(nodeID)
	if err != nil || n == nil {
		return nil, err
	}
	return &bounty.Node{ValidatorID: n.ValidatorID, Created: n.Created, Exited: n.Exited}, nil
}

type validatorLookup struct {
	*nodes.Nodes
}

func (l validatorLookup) Exists(validatorID uint64) (bool, error) {
	return l.ValidatorExists(validatorID)
}
