// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricing

import (
	"github.com/holiman/uint256"
)

// State is the persisted pricing singleton.
type State struct {
	Price       *uint256.Int
	LastUpdated uint64 // unix seconds of the last successful adjustment
	TotalNodes  uint64 // active node count baseline
	LastLoad    uint64 // load percentage baseline
}

// IsEmpty returns whether the state was never initialized.
func (s *State) IsEmpty() bool {
	return s.Price == nil || s.Price.IsZero()
}

// PriceChanged is sent after every successful adjustment.
type PriceChanged struct {
	Old  *uint256.Int
	New  *uint256.Int
	Time uint64
}
