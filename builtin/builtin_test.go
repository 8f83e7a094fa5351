// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/builtin/pricing"
	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

const launch = 1_700_000_000

var (
	owner      = econ.BytesToAddress([]byte("owner"))
	admin      = econ.BytesToAddress([]byte("admin"))
	controller = econ.BytesToAddress([]byte("controller"))
	holder     = econ.BytesToAddress([]byte("holder"))
)

func TestContracts(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	c := New(state.New(db), nil)
	require.NoError(t, c.Roles.Init(owner))
	require.NoError(t, c.Roles.GrantAdmin(owner, admin))
	periods := params.DefaultPeriods()
	periods.LaunchTimestamp = launch
	require.NoError(t, c.Params.InitPeriods(periods))

	vid, err := c.Nodes.RegisterValidator(controller, econ.Address{}, "validator")
	require.NoError(t, err)
	require.NoError(t, c.Nodes.SetRequirementMet(admin, vid, true))
	var ids []uint64
	for range 4 {
		id, err := c.Nodes.CreateNode(controller, vid, launch)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err = c.Nodes.CreateGroup(admin, 4, ids[:1])
	require.NoError(t, err)
	_, err = c.Nodes.CreateGroup(admin, 4, ids)
	require.NoError(t, err)
	_, err = c.Nodes.CreateGroup(admin, 1, ids[1:2])
	require.NoError(t, err)

	load, err := c.Pricing.TotalLoadPercentage()
	require.NoError(t, err)
	assert.Equal(t, uint64(56), load)

	require.NoError(t, c.Pricing.InitNodes(admin, launch))
	require.NoError(t, c.Nodes.ExitNode(controller, ids[3]))
	price, err := c.Pricing.AdjustPrice(launch + econ.InitialCheckTime)
	require.NoError(t, err)
	assert.True(t, price.Lt(uint256.NewInt(pricing.InitialPrice)))

	now := uint64(launch + econ.InitialRewardPeriod + econ.InitialDeltaPeriod + 1)
	amount, err := c.Bounty.GetBounty(controller, ids[0], now)
	require.NoError(t, err)
	assert.Positive(t, amount.Sign())
	balance, err := c.Token.BalanceOf(controller)
	require.NoError(t, err)
	assert.Equal(t, amount, balance)

	_, err = c.Bounty.GetBounty(controller, ids[3], now)
	assert.True(t, reverts.Is(err, reverts.InvalidState))

	require.NoError(t, c.Token.Mint(holder, big.NewInt(1000)))
	did, err := c.Delegation.Delegate(holder, vid, big.NewInt(100), 3, "", now)
	require.NoError(t, err)
	require.NoError(t, c.Delegation.AcceptPendingDelegation(controller, did, now))
	st, err := c.Delegation.GetState(did, now)
	require.NoError(t, err)
	assert.Equal(t, delegation.StateAccepted, st)

	_, err = c.Delegation.Delegate(holder, 42, big.NewInt(100), 3, "", now)
	assert.True(t, reverts.Is(err, reverts.InvalidState))

	require.NoError(t, c.State.Stage().Commit())

	// committed values are visible to a fresh binding
	view := New(state.NewReadOnly(db), nil)
	p, err := view.Pricing.Price()
	require.NoError(t, err)
	assert.Equal(t, price, p)
	st, err = view.Delegation.GetState(did, now+31*econ.SecondsPerDay)
	require.NoError(t, err)
	assert.Equal(t, delegation.StateDelegated, st)
}

func newContracts(t *testing.T) (*Contracts, []uint64) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := New(state.New(db), nil)
	require.NoError(t, c.Roles.Init(owner))
	require.NoError(t, c.Roles.GrantAdmin(owner, admin))
	periods := params.DefaultPeriods()
	periods.LaunchTimestamp = launch
	require.NoError(t, c.Params.InitPeriods(periods))

	vid, err := c.Nodes.RegisterValidator(controller, econ.Address{}, "validator")
	require.NoError(t, err)
	var ids []uint64
	for range 4 {
		id, err := c.Nodes.CreateNode(controller, vid, launch)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for _, g := range []struct {
		part    uint64
		members []uint64
	}{{4, ids[:1]}, {4, ids}, {1, ids[1:2]}} {
		_, err = c.Nodes.CreateGroup(admin, g.part, g.members)
		require.NoError(t, err)
	}
	return c, ids
}

func TestExitedNodeLeavesPricingAndBounty(t *testing.T) {
	c, ids := newContracts(t)
	require.NoError(t, c.Pricing.InitNodes(admin, launch))

	require.NoError(t, c.Nodes.ExitNode(controller, ids[1]))

	active, err := c.Nodes.ActiveNodeIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{ids[0], ids[2], ids[3]}, active)
	count, err := c.Nodes.ActiveNodeCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(active)), count)

	// (32 + 32 + 32 + 32) * 100 / 384
	load, err := c.Pricing.TotalLoadPercentage()
	require.NoError(t, err)
	assert.Equal(t, uint64(33), load)

	_, err = c.Pricing.AdjustPrice(launch + econ.InitialCheckTime)
	require.NoError(t, err)
	s, err := c.Pricing.State()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.TotalNodes)
	assert.Equal(t, uint64(33), s.LastLoad)

	now := uint64(launch + econ.InitialRewardPeriod + econ.InitialDeltaPeriod + 1)
	epoch, err := c.Params.EpochAt(now)
	require.NoError(t, err)
	pool := bounty.DefaultSchedule().EpochPool(epoch, econ.InitialRewardPeriod)
	want := new(big.Int).Div(pool, big.NewInt(3))

	estimate, err := c.Bounty.EstimateBounty(ids[0], now)
	require.NoError(t, err)
	assert.Equal(t, want, estimate)

	for _, id := range active {
		_, err := c.Bounty.GetBounty(controller, id, now)
		require.NoError(t, err)
	}
	_, err = c.Bounty.GetBounty(controller, ids[1], now)
	assert.True(t, reverts.Is(err, reverts.InvalidState))
}

func TestTransferCannotMoveLockedTokens(t *testing.T) {
	c, _ := newContracts(t)
	other := econ.BytesToAddress([]byte("other"))
	vid := uint64(1)

	require.NoError(t, c.Token.Mint(holder, big.NewInt(1000)))
	_, err := c.Delegation.Delegate(holder, vid, big.NewInt(800), 3, "", launch)
	require.NoError(t, err)

	err = c.Token.Transfer(holder, other, big.NewInt(900), launch)
	assert.True(t, reverts.Is(err, reverts.InsufficientBalance))
	require.NoError(t, c.Token.Transfer(holder, other, big.NewInt(200), launch))

	balance, err := c.Token.BalanceOf(holder)
	require.NoError(t, err)
	locked, err := c.Delegation.CalculateLockedAmount(holder, launch)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(800), balance)
	assert.Equal(t, big.NewInt(800), locked)
}
