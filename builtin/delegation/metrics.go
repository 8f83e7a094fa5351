// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import "github.com/vechain/econ/metrics"

var metricTransitions = metrics.LazyLoadCounterVec("delegation_transitions_count", []string{"from", "to"})

func recordTransition(from, to State) {
	metricTransitions().AddWithLabel(1, map[string]string{"from": from.String(), "to": to.String()})
}
