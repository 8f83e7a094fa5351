// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/econ"
)

// Price is a stored price adjustment.
type Price struct {
	Seq  uint64
	Time uint64
	Old  *uint256.Int
	New  *uint256.Int
}

// Bounty is a stored bounty payment.
type Bounty struct {
	Seq         uint64
	Time        uint64
	NodeID      uint64
	ValidatorID uint64
	Epoch       uint64
	Amount      *big.Int
	Recipient   econ.Address
}

// StateChange is a stored delegation transition.
type StateChange struct {
	Seq          uint64
	Time         uint64
	DelegationID uint64
	From         delegation.State
	To           delegation.State
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the event time, To < From leaves the range open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type Filter struct {
	Range   *Range
	Options *Options
	Order   Order // default asc
}

type BountyFilter struct {
	Filter
	NodeID *uint64
}

type StateChangeFilter struct {
	Filter
	DelegationID *uint64
}
