// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

type ownerOnly econ.Address

func (o ownerOnly) IsOwner(addr econ.Address) (bool, error) {
	return econ.Address(o) == addr, nil
}

var owner = econ.BytesToAddress([]byte("owner"))

func newParams(t *testing.T) *Params {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(econ.BytesToAddress([]byte("par")), state.New(db), ownerOnly(owner))
}

func TestParamsGetSet(t *testing.T) {
	p := newParams(t)
	key := econ.BytesToBytes32([]byte("key"))

	require.NoError(t, p.set(key, big.NewInt(10)))
	v, err := p.get(key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), v)

	assert.Error(t, p.set(key, big.NewInt(-1)))
}

func TestDefaultPeriods(t *testing.T) {
	p := newParams(t)

	periods, err := p.Periods()
	require.NoError(t, err)
	assert.Equal(t, uint64(2592000), periods.RewardPeriod)
	assert.Equal(t, uint64(3600), periods.DeltaPeriod)
	assert.Equal(t, uint64(300), periods.CheckTime)
}

func TestEpochClock(t *testing.T) {
	p := newParams(t)
	const launch = 1_000_000
	require.NoError(t, p.InitPeriods(Periods{
		RewardPeriod:    100,
		DeltaPeriod:     10,
		CheckTime:       5,
		LaunchTimestamp: launch,
	}))

	tests := []struct {
		now  uint64
		want uint64
	}{
		{0, 0},
		{launch - 1, 0},
		{launch, 0},
		{launch + 99, 0},
		{launch + 100, 1},
		{launch + 1050, 10},
	}
	for _, tt := range tests {
		epoch, err := p.EpochAt(tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, epoch, "now=%d", tt.now)
	}
}

func TestSetPeriodsIsProspective(t *testing.T) {
	p := newParams(t)
	const launch = 1000
	require.NoError(t, p.InitPeriods(Periods{RewardPeriod: 100, DeltaPeriod: 10, CheckTime: 5, LaunchTimestamp: launch}))

	err := p.SetPeriods(econ.BytesToAddress([]byte("hacker")), 50, 1, launch+250)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	// epoch 2 is in progress at launch+250, it started at launch+200
	require.NoError(t, p.SetPeriods(owner, 50, 1, launch+250))

	periods, err := p.Periods()
	require.NoError(t, err)
	assert.Equal(t, uint64(50), periods.RewardPeriod)
	assert.Equal(t, uint64(1), periods.DeltaPeriod)

	for now, want := range map[uint64]uint64{
		launch + 150: 2, // before the anchor, clamped to the anchor epoch
		launch + 200: 2,
		launch + 249: 2,
		launch + 250: 3,
		launch + 300: 4,
	} {
		epoch, err := p.EpochAt(now)
		require.NoError(t, err)
		assert.Equal(t, want, epoch, "now=%d", now)
	}

	assert.True(t, reverts.Is(p.SetPeriods(owner, 0, 1, launch+300), reverts.InvalidState))
	assert.True(t, reverts.Is(p.SetCheckTime(owner, 0, launch+300), reverts.InvalidState))

	require.NoError(t, p.SetCheckTime(owner, 240, launch+300))
	periods, _ = p.Periods()
	assert.Equal(t, uint64(240), periods.CheckTime)
	assert.Equal(t, uint64(50), periods.RewardPeriod)
}

func TestSetLaunchTimestamp(t *testing.T) {
	p := newParams(t)
	require.NoError(t, p.InitPeriods(Periods{RewardPeriod: 100, DeltaPeriod: 10, CheckTime: 5, LaunchTimestamp: 500}))

	assert.True(t, reverts.Is(
		p.SetLaunchTimestamp(econ.BytesToAddress([]byte("user")), 100, 0),
		reverts.Unauthorized))

	require.NoError(t, p.SetLaunchTimestamp(owner, 100, 0))
	periods, _ := p.Periods()
	assert.Equal(t, uint64(100), periods.LaunchTimestamp)

	epoch, _ := p.EpochAt(350)
	assert.Equal(t, uint64(2), epoch)

	// launched already
	assert.True(t, reverts.Is(p.SetLaunchTimestamp(owner, 900, 150), reverts.InvalidState))
}
