// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params keeps governance parameters, including the global period
// configuration and the epoch clock derived from it.
package params

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

var logger = log.WithContext("pkg", "params")

func SetLogger(l log.Logger) {
	logger = l
}

// Roles is the owner check consumed by the setters.
type Roles interface {
	IsOwner(addr econ.Address) (bool, error)
}

var errNotOwner = reverts.New(reverts.Unauthorized, "Caller is not the owner")

// Params binder of the params contract.
type Params struct {
	sctx  *solidity.Context
	roles Roles
}

func New(addr econ.Address, state *state.State, roles Roles) *Params {
	return &Params{sctx: solidity.NewContext(addr, state), roles: roles}
}

func (p *Params) get(key econ.Bytes32) (*big.Int, error) {
	v, err := solidity.NewUint256(p.sctx, key).Get()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get param %s", key.AbbrevString())
	}
	return v, nil
}

func (p *Params) set(key econ.Bytes32, value *big.Int) error {
	if err := solidity.NewUint256(p.sctx, key).Set(value); err != nil {
		return errors.Wrapf(err, "failed to set param %s", key.AbbrevString())
	}
	return nil
}

func (p *Params) getUint64(key econ.Bytes32) (uint64, error) {
	v, err := p.get(key)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, errors.Errorf("param %s exceeds uint64", key.AbbrevString())
	}
	return v.Uint64(), nil
}

func (p *Params) setUint64(key econ.Bytes32, v uint64) error {
	return p.set(key, new(big.Int).SetUint64(v))
}

func (p *Params) requireOwner(caller econ.Address) error {
	ok, err := p.roles.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errNotOwner
	}
	return nil
}
