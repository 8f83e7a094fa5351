// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bounty

import "github.com/vechain/econ/metrics"

var (
	metricPaidTokens = metrics.LazyLoadCounter("bounty_paid")
	metricClaims     = metrics.LazyLoadCounterVec("bounty_claims_count", []string{"result"})
)
