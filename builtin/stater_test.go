// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

func TestStaterView(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	stater := NewStater(db, nil)

	view, release := stater.View()
	got, err := view.Roles.Owner()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	release()

	st := state.New(db)
	require.NoError(t, New(st, nil).Roles.Init(owner))
	require.NoError(t, st.Stage().Commit())

	view, release = stater.View()
	defer release()
	got, err = view.Roles.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	// writes to a view are never persisted
	require.NoError(t, view.Roles.GrantAdmin(owner, admin))
	fresh, release2 := stater.View()
	defer release2()
	isAdmin, err := fresh.Roles.IsAdmin(admin)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
