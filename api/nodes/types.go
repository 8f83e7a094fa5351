// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nodes

import (
	"github.com/ethereum/go-ethereum/common/math"
)

type Bounty struct {
	NodeID         uint64                `json:"nodeId"`
	ValidatorID    uint64                `json:"validatorId"`
	Exited         bool                  `json:"exited"`
	Epoch          uint64                `json:"epoch"`
	NextRewardDate uint64                `json:"nextRewardDate"`
	NextClaimTime  uint64                `json:"nextClaimTime"`
	Estimate       *math.HexOrDecimal256 `json:"estimate"`
	Claimed        *math.HexOrDecimal256 `json:"claimed"`
}
