// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holders

import (
	"github.com/ethereum/go-ethereum/common/math"
)

type Holder struct {
	Balance     *math.HexOrDecimal256 `json:"balance"`
	Locked      *math.HexOrDecimal256 `json:"locked"`
	Delegated   *math.HexOrDecimal256 `json:"delegated"`
	Purchased   *math.HexOrDecimal256 `json:"purchased"`
	Delegations []uint64              `json:"delegations"`
}
