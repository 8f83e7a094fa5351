// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/state"
)

// Context binds storage helpers to one contract address in a state.
type Context struct {
	address econ.Address
	state   *state.State
}

func NewContext(address econ.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() econ.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Atomic runs fn inside a state checkpoint. If fn fails, every write made by fn is reverted.
func (c *Context) Atomic(fn func() error) error {
	checkpoint := c.state.NewCheckpoint()
	if err := fn(); err != nil {
		c.state.RevertTo(checkpoint)
		return err
	}
	return nil
}
