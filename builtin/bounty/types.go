// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bounty

import (
	"math/big"

	"github.com/vechain/econ/econ"
)

// Record is written for every successful claim of a node in an epoch.
type Record struct {
	Amount *big.Int
	Time   uint64
}

// EpochStats accounts the emission of one epoch.
type EpochStats struct {
	Paid   *big.Int
	Claims uint64
}

func (e *EpochStats) paid() *big.Int {
	if e == nil || e.Paid == nil {
		return new(big.Int)
	}
	return e.Paid
}

type BountyPaid struct {
	NodeID      uint64
	ValidatorID uint64
	Epoch       uint64
	Amount      *big.Int
	To          econ.Address
	Time        uint64
}
