// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricing

import (
	"github.com/ethereum/go-ethereum/common/math"
)

type PriceState struct {
	Price       *math.HexOrDecimal256 `json:"price"`
	Load        uint64                `json:"load"`
	LastUpdated uint64                `json:"lastUpdated"`
	TotalNodes  uint64                `json:"totalNodes"`
	LastLoad    uint64                `json:"lastLoad"`
}
