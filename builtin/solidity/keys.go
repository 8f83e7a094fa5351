// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"math/big"
)

// Key is a mapping key.
type Key interface {
	Bytes() []byte
}

// Uint64 is an integer mapping key, such as a node id or an epoch.
type Uint64 uint64

func (u Uint64) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(u))
}

// BigKey wraps a big integer as a mapping key.
type BigKey struct{ *big.Int }

func (b BigKey) Bytes() []byte {
	if b.Int == nil {
		return nil
	}
	return b.Int.Bytes()
}

// Pair is a composite key of two keys.
type Pair[A, B Key] struct {
	First  A
	Second B
}

func (p Pair[A, B]) Bytes() []byte {
	first := p.First.Bytes()
	out := make([]byte, 0, len(first)+1+len(p.Second.Bytes()))
	out = append(out, byte(len(first)))
	out = append(out, first...)
	return append(out, p.Second.Bytes()...)
}
