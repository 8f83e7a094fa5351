// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/builtin/token"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/lvldb"
	"github.com/vechain/econ/state"
)

const (
	launch = 1_600_000_000
	month  = 31 * econ.SecondsPerDay
)

var (
	owner     = econ.BytesToAddress([]byte("owner"))
	admin     = econ.BytesToAddress([]byte("admin"))
	holderA   = econ.BytesToAddress([]byte("holder"))
	validator = econ.BytesToAddress([]byte("validator"))
	hacker    = econ.BytesToAddress([]byte("hacker"))
)

const validatorID = 1

type testRoles struct{}

func (testRoles) IsOwner(addr econ.Address) (bool, error) { return addr == owner, nil }
func (testRoles) IsAdmin(addr econ.Address) (bool, error) { return addr == admin, nil }

type testValidators struct{}

func (testValidators) Exists(id uint64) (bool, error) { return id == validatorID, nil }
func (testValidators) IsController(id uint64, addr econ.Address) (bool, error) {
	return id == validatorID && addr == validator, nil
}

// DelegationTest drives a delegation service along a clock advanced by the test.
type DelegationTest struct {
	*Service
	t     *testing.T
	token *token.Token
	now   uint64
}

func newTest(t *testing.T) *DelegationTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)

	p := params.New(econ.BytesToAddress([]byte("params")), st, testRoles{})
	periods := params.DefaultPeriods()
	periods.LaunchTimestamp = launch
	require.NoError(t, p.InitPeriods(periods))

	tok := token.New(econ.BytesToAddress([]byte("token")), st)
	require.NoError(t, tok.Mint(holderA, big.NewInt(1000)))

	svc := New(econ.BytesToAddress([]byte("delegation")), st, testValidators{}, tok, testRoles{}, p)
	return &DelegationTest{Service: svc, t: t, token: tok, now: launch + 10}
}

// Skip advances the clock by seconds.
func (dt *DelegationTest) Skip(seconds uint64) *DelegationTest {
	dt.now += seconds
	return dt
}

func (dt *DelegationTest) Delegate(amount int64, period uint64) uint64 {
	id, err := dt.Service.Delegate(holderA, validatorID, big.NewInt(amount), period, "INFO", dt.now)
	require.NoError(dt.t, err)
	return id
}

func (dt *DelegationTest) Accept(id uint64) *DelegationTest {
	require.NoError(dt.t, dt.AcceptPendingDelegation(validator, id, dt.now))
	return dt
}

func (dt *DelegationTest) Undelegate(id uint64) *DelegationTest {
	require.NoError(dt.t, dt.RequestUndelegation(holderA, id, dt.now))
	return dt
}

func (dt *DelegationTest) AssertState(id uint64, want State) *DelegationTest {
	got, err := dt.GetState(id, dt.now)
	require.NoError(dt.t, err)
	assert.Equal(dt.t, want, got, "delegation %d", id)
	return dt
}

// AssertAmounts checks the locked and delegated amounts of the holder.
func (dt *DelegationTest) AssertAmounts(locked, delegated int64) *DelegationTest {
	l, err := dt.CalculateLockedAmount(holderA, dt.now)
	require.NoError(dt.t, err)
	d, err := dt.CalculateDelegatedAmount(holderA, dt.now)
	require.NoError(dt.t, err)
	assert.Equal(dt.t, locked, l.Int64(), "locked")
	assert.Equal(dt.t, delegated, d.Int64(), "delegated")
	return dt
}
