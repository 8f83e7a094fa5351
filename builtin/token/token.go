// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token keeps token balances and the total supply.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

var (
	logger = log.WithContext("pkg", "token")

	slotTotalSupply = econ.BytesToBytes32([]byte("token-supply"))
)

func SetLogger(l log.Logger) {
	logger = l
}

func accountKey(addr econ.Address) econ.Bytes32 {
	return econ.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

// Locker reports the part of a balance that may not leave the account.
type Locker interface {
	CalculateLockedAmount(addr econ.Address, now uint64) (*big.Int, error)
}

// Token binder of the token contract.
type Token struct {
	sctx        *solidity.Context
	totalSupply *solidity.Uint256
	locker      Locker
}

func New(addr econ.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		sctx:        sctx,
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
	}
}

// SetLocker installs the lock source checked by Transfer.
func (t *Token) SetLocker(l Locker) {
	t.locker = l
}

func (t *Token) balance(addr econ.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, accountKey(addr))
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr econ.Address) (*big.Int, error) {
	b, err := t.balance(addr).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return b, nil
}

// TotalSupply returns the amount ever minted.
func (t *Token) TotalSupply() (*big.Int, error) {
	s, err := t.totalSupply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}
	return s, nil
}

// Mint creates amount tokens for to.
func (t *Token) Mint(to econ.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidState, "negative amount")
	}
	err := t.sctx.Atomic(func() error {
		supply, err := t.totalSupply.Get()
		if err != nil {
			return err
		}
		if new(big.Int).Add(supply, amount).Cmp(econ.MaxUint256) > 0 {
			return reverts.New(reverts.ArithmeticOverflow, "total supply overflow")
		}
		if err := t.totalSupply.Add(amount); err != nil {
			return err
		}
		return t.balance(to).Add(amount)
	})
	if err != nil {
		return err
	}
	logger.Debug("minted", "to", to, "amount", amount)
	return nil
}

// Transfer moves amount from one account to another. Only the unlocked part
// of the sender's balance can move.
func (t *Token) Transfer(from, to econ.Address, amount *big.Int, now uint64) error {
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidState, "negative amount")
	}
	return t.sctx.Atomic(func() error {
		balance, err := t.BalanceOf(from)
		if err != nil {
			return err
		}
		free := balance
		if t.locker != nil {
			locked, err := t.locker.CalculateLockedAmount(from, now)
			if err != nil {
				return err
			}
			free = new(big.Int).Sub(balance, locked)
		}
		if free.Cmp(amount) < 0 {
			return reverts.New(reverts.InsufficientBalance, "transfer amount exceeds unlocked balance")
		}
		if err := t.balance(from).Sub(amount); err != nil {
			return err
		}
		return t.balance(to).Add(amount)
	})
}
