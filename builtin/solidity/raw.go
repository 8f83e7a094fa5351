// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/econ/econ"
)

// Raw is a single rlp encoded value at a fixed slot.
type Raw[V any] struct {
	context *Context
	pos     econ.Bytes32
}

func NewRaw[V any](context *Context, pos econ.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

// Get returns the stored value. For pointer types a nil pointer means never written.
func (r *Raw[V]) Get() (value V, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Upsert stores value. A nil pointer clears the slot.
func (r *Raw[V]) Upsert(value V) error {
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
		r.context.state.SetRawStorage(r.context.address, r.pos, nil)
		return nil
	}
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
