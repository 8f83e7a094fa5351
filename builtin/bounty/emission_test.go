// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bounty

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/econ/econ"
)

func TestYearlySchedule(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		year   uint64
		amount *big.Int
	}{
		{0, econ.Tokens(385_000_000)},
		{1, econ.Tokens(346_500_000)},
		{5, econ.Tokens(192_500_000)},
		{6, econ.Tokens(96_250_000)},
		{8, econ.Tokens(96_250_000)},
		{9, new(big.Int).Div(econ.Tokens(96_250_000), big.NewInt(2))},
		{3 * 300, new(big.Int)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.amount, s.YearAmount(tt.year), "year %d", tt.year)
	}

	assert.Equal(t, econ.Tokens(2_310_000_000), s.TotalPool())
}

func TestEpochPool(t *testing.T) {
	s := DefaultSchedule()

	assert.Equal(t, uint64(12), epochsPerYear(econ.SecondsPerMonth))
	assert.Equal(t, uint64(1), epochsPerYear(0))
	assert.Equal(t, uint64(1), epochsPerYear(2*econ.SecondsPerYear))

	want := new(big.Int).Div(econ.Tokens(385_000_000), big.NewInt(12))
	assert.Equal(t, want, s.EpochPool(0, econ.SecondsPerMonth))
	assert.Equal(t, want, s.EpochPool(11, econ.SecondsPerMonth))

	want = new(big.Int).Div(econ.Tokens(346_500_000), big.NewInt(12))
	assert.Equal(t, want, s.EpochPool(12, econ.SecondsPerMonth))
}
