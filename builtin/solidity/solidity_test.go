// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

type testStruct struct {
	Field1 uint64
	Amount *big.Int
	Addr   econ.Address
	Opt    *uint64 `rlp:"nil"`
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(econ.Address{1}, state.New(db))
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[Uint64, *testStruct](ctx, econ.BytesToBytes32([]byte("structs")))

	empty, err := m.Get(1)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Equal(t, uint64(0), empty.Field1)

	exists, err := m.Exists(1)
	require.NoError(t, err)
	assert.False(t, exists)

	opt := uint64(9)
	in := &testStruct{Field1: 5, Amount: big.NewInt(100), Addr: econ.Address{2}, Opt: &opt}
	require.NoError(t, m.Set(1, in))

	out, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	exists, err = m.Exists(1)
	require.NoError(t, err)
	assert.True(t, exists)

	// the same key under a different base slot is independent
	other := NewMapping[Uint64, *testStruct](ctx, econ.BytesToBytes32([]byte("others")))
	exists, err = other.Exists(1)
	require.NoError(t, err)
	assert.False(t, exists)

	m.Delete(1)
	exists, _ = m.Exists(1)
	assert.False(t, exists)
}

func TestPairKey(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[Pair[Uint64, Uint64], bool](ctx, econ.Bytes32{1})

	require.NoError(t, m.Set(Pair[Uint64, Uint64]{1, 2}, true))
	v, err := m.Get(Pair[Uint64, Uint64]{1, 2})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = m.Get(Pair[Uint64, Uint64]{2, 1})
	require.NoError(t, err)
	assert.False(t, v)

	assert.NotEqual(t,
		Pair[BigKey, Uint64]{BigKey{big.NewInt(1)}, 0}.Bytes(),
		Pair[BigKey, Uint64]{BigKey{big.NewInt(256)}, 0}.Bytes())
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	counter := NewRaw[*big.Int](ctx, econ.Bytes32{2})

	v, err := counter.Get()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, counter.Upsert(big.NewInt(42)))
	v, err = counter.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), v)

	require.NoError(t, counter.Upsert(nil))
	v, err = counter.Get()
	require.NoError(t, err)
	assert.Nil(t, v)

	list := NewRaw[[]uint64](ctx, econ.Bytes32{3})
	require.NoError(t, list.Upsert([]uint64{3, 6, 12}))
	got, err := list.Get()
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 6, 12}, got)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, econ.Bytes32{4})

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, u.Add(big.NewInt(10)))
	require.NoError(t, u.Sub(big.NewInt(3)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(7), v)

	assert.True(t, errors.Is(u.Sub(big.NewInt(8)), errUint256Range))
	assert.Error(t, u.Set(new(big.Int).Lsh(big.NewInt(1), 256)))
	require.NoError(t, u.Set(econ.MaxUint256))
}

func TestAddressAndAtomic(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, econ.Bytes32{5})

	owner := econ.BytesToAddress([]byte("owner"))
	a.Set(owner)

	boom := errors.New("boom")
	err := ctx.Atomic(func() error {
		a.Set(econ.BytesToAddress([]byte("intruder")))
		return boom
	})
	assert.Equal(t, boom, err)

	got, err := a.Get()
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	require.NoError(t, ctx.Atomic(func() error {
		a.Set(econ.Address{})
		return nil
	}))
	got, _ = a.Get()
	assert.True(t, got.IsZero())
}
