// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestReverts(t *testing.T) {
	revert := New(TooSoon, "It's not a time to update a price")
	assert.Equal(t, "too soon: It's not a time to update a price", revert.Error())
	assert.Equal(t, "no change", New(NoChange, "").Error())
	assert.Equal(t, "kind(99)", Kind(99).String())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestIs(t *testing.T) {
	err := pkgerrors.WithMessage(Newf(Unauthorized, "caller %s", "0x01"), "claim")

	assert.True(t, Is(err, Unauthorized))
	assert.False(t, Is(err, NotTimeYet))
	assert.False(t, Is(errors.New("plain"), Unauthorized))
	assert.True(t, IsRevertErr(err))

	assert.True(t, errors.Is(err, New(Unauthorized, "")))
	assert.False(t, errors.Is(err, New(InvalidState, "")))
}
