// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

type Periods struct {
	RewardPeriod    uint64 `json:"rewardPeriod"`
	DeltaPeriod     uint64 `json:"deltaPeriod"`
	CheckTime       uint64 `json:"checkTime"`
	LaunchTimestamp uint64 `json:"launchTimestamp"`
	Epoch           uint64 `json:"epoch"`
	EpochStart      uint64 `json:"epochStart"`
}
