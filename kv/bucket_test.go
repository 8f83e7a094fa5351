// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/kv"
	"github.com/vechain/econ/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewStore(db)
	b := kv.Bucket("b").NewStore(db)

	require.NoError(t, a.Put([]byte("k"), []byte("va")))
	require.NoError(t, b.Put([]byte("k"), []byte("vb")))

	got, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), got)

	raw, err := db.Get([]byte("bk"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), raw)

	require.NoError(t, a.Delete([]byte("k")))
	_, err = a.Get([]byte("k"))
	assert.True(t, a.IsNotFound(err))

	bulk := a.Bulk()
	require.NoError(t, bulk.Put([]byte("1"), []byte("x")))
	require.NoError(t, bulk.Put([]byte("2"), []byte("y")))
	require.NoError(t, bulk.Write())

	it := a.Iterate(kv.Range{})
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"1", "2"}, keys)

	snap := b.Snapshot()
	defer snap.Release()
	has, err := snap.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}
