// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := econ.BytesToAddress([]byte("contract"))
	key := econ.BytesToBytes32([]byte("slot"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	value := econ.BytesToBytes32([]byte{1, 2, 3})
	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	// other contracts do not see the slot
	v, err = st.GetStorage(econ.BytesToAddress([]byte("other")), key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	st.SetStorage(addr, key, econ.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStructuredStorage(t *testing.T) {
	st, _ := newTestState(t)
	addr := econ.BytesToAddress([]byte("contract"))
	key := econ.BytesToBytes32([]byte("struct"))

	type pair struct {
		A uint64
		B string
	}
	in := pair{7, "x"}
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&in)
	}))

	var out pair
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &out)
	}))
	assert.Equal(t, in, out)

	// list values read back as their hash
	h, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	raw, _ := rlp.EncodeToBytes(&in)
	assert.Equal(t, econ.Blake2b(raw), h)

	boom := errors.New("boom")
	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, boom })
	var stateErr *Error
	require.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, boom)
}

func TestCheckpoint(t *testing.T) {
	st, _ := newTestState(t)
	addr := econ.BytesToAddress([]byte("contract"))
	key := econ.BytesToBytes32([]byte("slot"))

	one := econ.BytesToBytes32([]byte{1})
	two := econ.BytesToBytes32([]byte{2})

	st.SetStorage(addr, key, one)
	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, two)

	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, two, v)

	st.RevertTo(cp)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, one, v)
	assert.Equal(t, 1, st.Changes())
}

func TestStageCommit(t *testing.T) {
	st, db := newTestState(t)
	addr := econ.BytesToAddress([]byte("contract"))
	k1 := econ.BytesToBytes32([]byte("k1"))
	k2 := econ.BytesToBytes32([]byte("k2"))
	value := econ.BytesToBytes32([]byte("v"))

	st.SetStorage(addr, k1, value)
	st.SetStorage(addr, k2, value)

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())
	assert.Equal(t, 0, st.Changes())

	// a fresh state over the same store sees the committed values
	fresh := New(db)
	v, err := fresh.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	// clearing a slot deletes it from the store
	fresh.SetStorage(addr, k2, econ.Bytes32{})
	require.NoError(t, fresh.Stage().Commit())
	has, err := db.Has(storageKey{addr, k2}.bytes())
	require.NoError(t, err)
	assert.False(t, has)

	// and reloads as empty
	again := New(db)
	v, err = again.GetStorage(addr, k2)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestReadOnly(t *testing.T) {
	st, db := newTestState(t)
	addr := econ.BytesToAddress([]byte("contract"))
	key := econ.BytesToBytes32([]byte("slot"))
	value := econ.BytesToBytes32([]byte("v"))

	st.SetStorage(addr, key, value)
	require.NoError(t, st.Stage().Commit())

	snap := db.Snapshot()
	defer snap.Release()
	ro := NewReadOnly(snap)

	v, err := ro.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	ro.SetStorage(addr, key, econ.Bytes32{})
	assert.Error(t, ro.Stage().Commit())
}
