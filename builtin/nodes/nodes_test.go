// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

var (
	admin      = econ.BytesToAddress([]byte("admin"))
	controller = econ.BytesToAddress([]byte("validator"))
	hacker     = econ.BytesToAddress([]byte("hacker"))
)

type testRoles struct{}

func (testRoles) IsAdmin(addr econ.Address) (bool, error) { return addr == admin, nil }
func (testRoles) IsOwner(econ.Address) (bool, error)      { return false, nil }

func newNodes(t *testing.T) *Nodes {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(econ.BytesToAddress([]byte("nodes")), state.New(db), testRoles{})
}

func TestValidatorRegistration(t *testing.T) {
	n := newNodes(t)

	_, err := n.RegisterValidator(econ.Address{}, econ.Address{}, "none")
	assert.True(t, reverts.Is(err, reverts.InvalidState))

	id, err := n.RegisterValidator(controller, econ.Address{}, "Validator1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	v, err := n.Validator(id)
	require.NoError(t, err)
	assert.Equal(t, "Validator1", v.Name)
	assert.Equal(t, controller, v.RewardAddress)

	ok, err := n.IsController(id, controller)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = n.IsController(id, hacker)
	assert.False(t, ok)
	ok, _ = n.IsController(99, controller)
	assert.False(t, ok)

	exists, _ := n.ValidatorExists(2)
	assert.False(t, exists)

	_, err = n.RewardAddress(99)
	assert.True(t, reverts.Is(err, reverts.NotFound))
}

func TestActiveListKeepsFirstNode(t *testing.T) {
	n := newNodes(t)
	vid, err := n.RegisterValidator(controller, controller, "v")
	require.NoError(t, err)
	for i := range 4 {
		_, err := n.CreateNode(controller, vid, 100+uint64(i))
		require.NoError(t, err)
	}

	second, err := n.Node(1)
	require.NoError(t, err)
	require.NotNil(t, second.PrevID())
	assert.Equal(t, uint64(0), *second.PrevID())
	require.NotNil(t, second.NextID())
	assert.Equal(t, uint64(2), *second.NextID())

	first, err := n.Node(0)
	require.NoError(t, err)
	assert.Nil(t, first.PrevID())

	require.NoError(t, n.ExitNode(controller, 1))

	ids, err := n.ActiveNodeIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2, 3}, ids)
	count, err := n.ActiveNodeCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(ids)), count)

	third, err := n.Node(2)
	require.NoError(t, err)
	require.NotNil(t, third.PrevID())
	assert.Equal(t, uint64(0), *third.PrevID())
}

func TestActiveList(t *testing.T) {
	n := newNodes(t)
	vid, err := n.RegisterValidator(controller, controller, "v")
	require.NoError(t, err)

	_, err = n.CreateNode(hacker, vid, 100)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	for i := range 4 {
		id, err := n.CreateNode(controller, vid, 100+uint64(i))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), id)
	}

	ids, err := n.ActiveNodeIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 3}, ids)

	// remove middle, head and tail
	require.NoError(t, n.ExitNode(controller, 1))
	require.NoError(t, n.ExitNode(admin, 0))
	assert.True(t, reverts.Is(n.ExitNode(hacker, 3), reverts.Unauthorized))
	require.NoError(t, n.ExitNode(controller, 3))
	assert.True(t, reverts.Is(n.ExitNode(controller, 3), reverts.InvalidState))

	ids, err = n.ActiveNodeIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)

	count, err := n.ActiveNodeCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	exited, err := n.IsExited(1)
	require.NoError(t, err)
	assert.True(t, exited)
	_, err = n.IsExited(42)
	assert.True(t, reverts.Is(err, reverts.NotFound))

	// the only node left
	require.NoError(t, n.ExitNode(controller, 2))
	ids, err = n.ActiveNodeIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	id, err := n.CreateNode(controller, vid, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id)
	ids, _ = n.ActiveNodeIDs()
	assert.Equal(t, []uint64{4}, ids)

	v, _ := n.Validator(vid)
	assert.Equal(t, uint64(1), v.NodeCount)
}

func TestGroups(t *testing.T) {
	n := newNodes(t)
	vid, _ := n.RegisterValidator(controller, controller, "v")
	for range 3 {
		_, err := n.CreateNode(controller, vid, 1)
		require.NoError(t, err)
	}

	_, err := n.CreateGroup(hacker, 4, []uint64{0})
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	_, err = n.CreateGroup(admin, 4, []uint64{0, 0})
	assert.True(t, reverts.Is(err, reverts.InvalidState))

	_, err = n.CreateGroup(admin, 4, []uint64{0, 9})
	assert.True(t, reverts.Is(err, reverts.NotFound))
	// rejected creation leaves no trace on node 0
	parts, err := n.Memberships(0)
	require.NoError(t, err)
	assert.Empty(t, parts)

	g0, err := n.CreateGroup(admin, 4, []uint64{0, 1})
	require.NoError(t, err)
	_, err = n.CreateGroup(admin, 1, []uint64{1})
	require.NoError(t, err)

	parts, err = n.Memberships(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 1}, parts)

	g, err := n.Group(g0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, g.Members)

	require.NoError(t, n.ExitNode(controller, 2))
	_, err = n.CreateGroup(admin, 1, []uint64{2})
	assert.True(t, reverts.Is(err, reverts.InvalidState))

	// links survive group membership updates
	ids, _ := n.ActiveNodeIDs()
	assert.Equal(t, []uint64{0, 1}, ids)
}

func TestCanMaintainNode(t *testing.T) {
	n := newNodes(t)
	v1, _ := n.RegisterValidator(controller, controller, "v1")
	v2, _ := n.RegisterValidator(hacker, hacker, "v2")
	node, _ := n.CreateNode(controller, v1, 1)

	ok, err := n.CanMaintainNode(v1, node)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, reverts.Is(n.SetRequirementMet(controller, v1, true), reverts.Unauthorized))
	require.NoError(t, n.SetRequirementMet(admin, v1, true))
	require.NoError(t, n.SetRequirementMet(admin, v2, true))

	ok, _ = n.CanMaintainNode(v1, node)
	assert.True(t, ok)
	ok, _ = n.CanMaintainNode(v2, node)
	assert.False(t, ok)
}
