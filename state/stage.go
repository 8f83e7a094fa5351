// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/econ/stackedmap"
)

// Stage holds the changes collected from a state, ready to be written.
type Stage struct {
	state   *State
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of slots to be written.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the store atomically. On success the state's
// journal is reset, so the state continues from the committed values.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	if s.state.store == nil {
		return errors.New("commit read only state")
	}
	bulk := s.state.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.bytes())
		} else {
			err = bulk.Put(k.bytes(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}

	st := s.state
	for k, v := range s.changes {
		st.cache.Add(k, v)
	}
	st.sm = stackedmap.New(st.load)
	metricCommittedSlots().Add(int64(len(s.changes)))
	if changed, hit, miss := st.cache.Stats(); changed {
		metricCacheHitRate().Set(int64(st.cache.HitRate()))
		logger.Debug("state cache stats", "hit", hit, "miss", miss, "permille", st.cache.HitRate())
	}
	return nil
}
