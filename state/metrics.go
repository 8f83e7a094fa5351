// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/metrics"
)

var logger = log.WithContext("pkg", "state")

var (
	metricStoreReads     = metrics.LazyLoadCounter("state_store_read_count")
	metricCommittedSlots = metrics.LazyLoadCounter("state_committed_slots_count")
	metricCacheHitRate   = metrics.LazyLoadGauge("state_cache_hit_permille")
)
