// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricing

import "github.com/vechain/econ/metrics"

var (
	metricPrice       = metrics.LazyLoadGauge("pricing_price")
	metricAdjustments = metrics.LazyLoadCounterVec("pricing_adjustments_count", []string{"result"})
	metricLoad        = metrics.LazyLoadHistogram("pricing_load_percent", metrics.BucketPercent)
)

func recordAdjustment(result string) {
	metricAdjustments().AddWithLabel(1, map[string]string{"result": result})
}
