// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/econ/cache"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/kv"
	"github.com/vechain/econ/stackedmap"
)

const readCacheSize = 4096

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Cause returns the underlying error.
func (e *Error) Cause() error { return e.cause }

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.cause }

// State manages the storage of all contracts.
type State struct {
	getter kv.Getter
	store  kv.Store               // nil if read only
	cache  *cache.LRU             // committed values read from store
	sm     *stackedmap.StackedMap // uncommitted writes
}

type storageKey struct {
	addr econ.Address
	key  econ.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, econ.AddressLength+32)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// New create state object over the given store.
func New(store kv.Store) *State {
	s := newState(store)
	s.store = store
	return s
}

// NewReadOnly creates a state reading from the getter, typically a store snapshot.
// Writes are kept in memory and can never be committed.
func NewReadOnly(getter kv.Getter) *State {
	return newState(getter)
}

func newState(getter kv.Getter) *State {
	lru, _ := cache.NewLRU(readCacheSize)
	s := &State{
		getter: getter,
		cache:  lru,
	}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key any) (any, bool, error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %T", key))
	}
	v, err := s.cache.GetOrLoad(k, func(any) (any, error) {
		metricStoreReads().Add(1)
		raw, err := s.getter.Get(k.bytes())
		if err != nil {
			if s.getter.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(raw), nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr econ.Address, key econ.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr econ.Address, key econ.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr econ.Address, key econ.Bytes32) (econ.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return econ.Bytes32{}, err
	}
	if len(raw) == 0 {
		return econ.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return econ.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// structured value, return its hash
		return econ.Blake2b(raw), nil
	}
	return econ.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr econ.Address, key, value econ.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr econ.Address, key econ.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr econ.Address, key econ.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Changes returns the number of distinct slots written since the last commit.
func (s *State) Changes() int {
	return len(s.changes())
}

func (s *State) changes() map[storageKey]rlp.RawValue {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(storageKey)] = v.(rlp.RawValue)
		return true
	})
	return changes
}

// Stage makes a stage object to commit all changes.
// The state must not be modified between Stage and Commit.
func (s *State) Stage() *Stage {
	return &Stage{state: s, changes: s.changes()}
}
