// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bounty

import (
	"math/big"

	"github.com/vechain/econ/econ"
)

// EmissionPolicy decides how many tokens each epoch may distribute.
type EmissionPolicy interface {
	// EpochPool returns the amount available to all nodes in the epoch.
	EpochPool(epoch, rewardPeriod uint64) *big.Int
	// TotalPool bounds the cumulative emission.
	TotalPool() *big.Int
}

// YearlySchedule emits fixed yearly amounts for six years, then halves the
// last amount every three years.
type YearlySchedule struct {
	Years        []*big.Int
	HalvingYears uint64
}

var _ EmissionPolicy = (*YearlySchedule)(nil)

func DefaultSchedule() *YearlySchedule {
	return &YearlySchedule{
		Years: []*big.Int{
			econ.Tokens(385_000_000),
			econ.Tokens(346_500_000),
			econ.Tokens(308_000_000),
			econ.Tokens(269_500_000),
			econ.Tokens(231_000_000),
			econ.Tokens(192_500_000),
		},
		HalvingYears: 3,
	}
}

// YearAmount returns the emission of the zero based year.
func (s *YearlySchedule) YearAmount(year uint64) *big.Int {
	n := uint64(len(s.Years))
	if n == 0 {
		return new(big.Int)
	}
	if year < n {
		return new(big.Int).Set(s.Years[year])
	}
	halvings := (year-n)/s.HalvingYears + 1
	if halvings >= 256 {
		return new(big.Int)
	}
	return new(big.Int).Rsh(s.Years[n-1], uint(halvings))
}

func (s *YearlySchedule) EpochPool(epoch, rewardPeriod uint64) *big.Int {
	perYear := epochsPerYear(rewardPeriod)
	amount := s.YearAmount(epoch / perYear)
	return amount.Div(amount, new(big.Int).SetUint64(perYear))
}

// TotalPool is the sum of the fixed years plus the geometric tail.
func (s *YearlySchedule) TotalPool() *big.Int {
	total := new(big.Int)
	for _, y := range s.Years {
		total.Add(total, y)
	}
	if n := len(s.Years); n > 0 {
		tail := new(big.Int).Mul(s.Years[n-1], new(big.Int).SetUint64(s.HalvingYears))
		total.Add(total, tail)
	}
	return total
}

func epochsPerYear(rewardPeriod uint64) uint64 {
	if rewardPeriod == 0 || rewardPeriod >= econ.SecondsPerYear {
		return 1
	}
	return econ.SecondsPerYear / rewardPeriod
}
