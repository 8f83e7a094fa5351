// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "github.com/vechain/econ/metrics"

var (
	metricWrites      = metrics.LazyLoadCounterVec("logdb_writes_count", []string{"table"})
	metricQueryOrder  = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricLimitBucket = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"table"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(table string, f *Filter) {
	order := f.Order
	if order == "" {
		order = ASC
	}
	metricQueryOrder().AddWithLabel(1, map[string]string{"order": string(order)})
	if f.Options != nil {
		metricLimitBucket().ObserveWithLabels(int64(f.Options.Limit), map[string]string{"table": table})
	}
}
