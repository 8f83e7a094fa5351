// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRoot(t *testing.T, h func(*bytes.Buffer) slog.Handler) *bytes.Buffer {
	old := Root()
	t.Cleanup(func() { SetDefault(old) })

	var buf bytes.Buffer
	SetDefault(NewLogger(h(&buf)))
	return &buf
}

func TestWithContextResolvesLateRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "pricing")

	buf := captureRoot(t, func(b *bytes.Buffer) slog.Handler {
		return JSONHandler(b)
	})
	pkgLogger.Info("price adjusted", "old", big.NewInt(5000000), "new", uint256.NewInt(4999000))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "pricing", rec["pkg"])
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "5000000", rec["old"])
	assert.Equal(t, "4999000", rec["new"])
	assert.Contains(t, rec, "t")
}

func TestLogfmtLevel(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	buf := captureRoot(t, func(b *bytes.Buffer) slog.Handler {
		return LogfmtHandlerWithLevel(b, &level)
	})

	Debug("hidden")
	Info("hidden")
	Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "lvl=warn"), out)
	assert.Contains(t, out, "k=1")
}

func TestOddArgs(t *testing.T) {
	buf := captureRoot(t, func(b *bytes.Buffer) slog.Handler {
		return LogfmtHandler(b)
	})
	Root().With("a", 1).Info("odd", "dangling")
	assert.Contains(t, buf.String(), errorKey)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, "trce", LevelString(LevelTrace))
	assert.Equal(t, "crit", LevelString(LevelCrit))
}

func TestDiscard(t *testing.T) {
	l := NewLogger(DiscardHandler())
	assert.False(t, l.Enabled(context.Background(), LevelCrit))
	l.With("x", 1).Info("nothing")
}
