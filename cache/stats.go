// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts lookups of a cache.
type Stats struct {
	hit, miss atomic.Int64
	last      atomic.Int32 // permille reported by the last Stats call
}

func (cs *Stats) Hit() int64  { return cs.hit.Add(1) }
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Permille returns the hit rate in permille, 0 before any lookup.
func (cs *Stats) Permille() int32 {
	hit, miss := cs.hit.Load(), cs.miss.Load()
	if hit+miss == 0 {
		return 0
	}
	return int32(hit * 1000 / (hit + miss))
}

// Stats returns the number of hits and misses, and whether Permille
// moved since the previous call.
func (cs *Stats) Stats() (bool, int64, int64) {
	p := cs.Permille()
	return cs.last.Swap(p) != p, cs.hit.Load(), cs.miss.Load()
}
