// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/econ"
)

// Purchased returns the amount of tokens the holder bought in the token sale.
func (s *Service) Purchased(addr econ.Address) (*big.Int, error) {
	h, err := s.getHolder(addr)
	if err != nil {
		return nil, err
	}
	return h.purchased(), nil
}

// purchaseLocked returns the part of the purchase that is still locked. Completed
// delegations release the purchase one for one, and once half of it has been
// delegated to completion the whole purchase is released.
func (s *Service) purchaseLocked(h *holder, now uint64) (*big.Int, error) {
	purchased := h.purchased()
	if purchased.Sign() == 0 {
		return new(big.Int), nil
	}
	completed, err := s.sum(h.Delegations, now, func(st State) bool { return st == StateCompleted })
	if err != nil {
		return nil, err
	}
	if new(big.Int).Lsh(completed, 1).Cmp(purchased) >= 0 {
		return new(big.Int), nil
	}
	return completed.Sub(purchased, completed), nil
}

// Sold marks amount tokens of the holder as purchased. The purchase cannot exceed
// the holder balance. Admin only.
func (s *Service) Sold(caller, addr econ.Address, amount *big.Int) error {
	admin, err := s.roles.IsAdmin(caller)
	if err != nil {
		return err
	}
	if !admin {
		owner, err := s.roles.IsOwner(caller)
		if err != nil {
			return err
		}
		if !owner {
			return reverts.New(reverts.Unauthorized, "Caller is not an admin")
		}
	}
	if amount == nil || amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidState, "Amount should be positive")
	}
	err = s.sctx.Atomic(func() error {
		h, err := s.getHolder(addr)
		if err != nil {
			return err
		}
		purchased := new(big.Int).Add(h.purchased(), amount)
		balance, err := s.balances.BalanceOf(addr)
		if err != nil {
			return err
		}
		if purchased.Cmp(balance) > 0 {
			return reverts.New(reverts.InsufficientBalance, "purchase exceeds holder balance")
		}
		h.Purchased = purchased
		if err := s.holders.Set(addr, h); err != nil {
			return errors.Wrap(err, "failed to set holder")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("tokens sold", "holder", addr, "amount", amount)
	return nil
}
