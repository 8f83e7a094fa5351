// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package roles keeps the owner and the admin set.
package roles

import (
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

var (
	logger = log.WithContext("pkg", "roles")

	slotOwner  = econ.BytesToBytes32([]byte("owner"))
	slotAdmins = econ.BytesToBytes32([]byte("admins"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// ErrNotOwner is returned by owner-only operations.
var ErrNotOwner = reverts.New(reverts.Unauthorized, "Caller is not the owner")

// Roles binder of the roles contract.
type Roles struct {
	sctx   *solidity.Context
	owner  *solidity.Address
	admins *solidity.Mapping[econ.Address, bool]
}

func New(addr econ.Address, state *state.State) *Roles {
	sctx := solidity.NewContext(addr, state)
	return &Roles{
		sctx:   sctx,
		owner:  solidity.NewAddress(sctx, slotOwner),
		admins: solidity.NewMapping[econ.Address, bool](sctx, slotAdmins),
	}
}

// Owner returns the current owner.
func (r *Roles) Owner() (econ.Address, error) {
	owner, err := r.owner.Get()
	if err != nil {
		return econ.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return owner, nil
}

// IsOwner returns whether addr is the owner. The zero address is never the owner.
func (r *Roles) IsOwner(addr econ.Address) (bool, error) {
	if addr.IsZero() {
		return false, nil
	}
	owner, err := r.Owner()
	if err != nil {
		return false, err
	}
	return owner == addr, nil
}

// IsAdmin returns whether addr holds the admin role.
func (r *Roles) IsAdmin(addr econ.Address) (bool, error) {
	ok, err := r.admins.Get(addr)
	if err != nil {
		return false, errors.Wrap(err, "failed to get admin")
	}
	return ok, nil
}

// Init sets the first owner. It only succeeds while no owner is set.
func (r *Roles) Init(owner econ.Address) error {
	current, err := r.Owner()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return reverts.New(reverts.InvalidState, "owner already set")
	}
	if owner.IsZero() {
		return reverts.New(reverts.InvalidState, "zero owner")
	}
	r.owner.Set(owner)
	logger.Info("owner initialized", "owner", owner)
	return nil
}

func (r *Roles) requireOwner(caller econ.Address) error {
	ok, err := r.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (r *Roles) TransferOwnership(caller, newOwner econ.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.InvalidState, "zero owner")
	}
	r.owner.Set(newOwner)
	logger.Info("ownership transferred", "from", caller, "to", newOwner)
	return nil
}

// GrantAdmin gives addr the admin role. Owner only.
func (r *Roles) GrantAdmin(caller, addr econ.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if err := r.admins.Set(addr, true); err != nil {
		return errors.Wrap(err, "failed to set admin")
	}
	logger.Debug("admin granted", "admin", addr)
	return nil
}

// RevokeAdmin removes the admin role from addr. Owner only.
func (r *Roles) RevokeAdmin(caller, addr econ.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	r.admins.Delete(addr)
	logger.Debug("admin revoked", "admin", addr)
	return nil
}
