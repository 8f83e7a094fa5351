// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package econ

import "math/big"

// Time constants, in seconds.
const (
	SecondsPerHour  uint64 = 60 * 60
	SecondsPerDay   uint64 = 24 * SecondsPerHour
	SecondsPerMonth uint64 = 30 * SecondsPerDay
	SecondsPerYear  uint64 = 31622400 // 366 days
)

// Defaults of the global period configuration.
const (
	InitialRewardPeriod = SecondsPerMonth // 30 days
	InitialDeltaPeriod  = SecondsPerHour  // grace window after each reward period
	InitialCheckTime    = 5 * 60          // pricing cooldown
)

// Keys of governance params.
var (
	KeyRewardPeriod    = BytesToBytes32([]byte("reward-period"))
	KeyDeltaPeriod     = BytesToBytes32([]byte("delta-period"))
	KeyCheckTime       = BytesToBytes32([]byte("check-time"))
	KeyLaunchTimestamp = BytesToBytes32([]byte("launch-timestamp"))
	KeyEpochAnchorTime = BytesToBytes32([]byte("epoch-anchor-time"))
	KeyEpochAnchor     = BytesToBytes32([]byte("epoch-anchor"))
)

// Token unit.
var (
	// Ether 10^18, the base unit multiplier of token amounts.
	Ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	// MaxUint256 is the largest amount any stored value may hold.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Tokens returns n whole tokens in base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Ether)
}
