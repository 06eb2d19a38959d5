// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb

import (
	"strconv"

	"github.com/vechain/stakevault/metrics"
)

var (
	metricQueryOrderCounter = metrics.LazyLoadCounterVec("historydb_query_order", []string{"order"})
	metricLimitBucket       = metrics.LazyLoadHistogramVec("historydb_query_limit_bucket", []string{"kinds"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricInsertedCounter = metrics.LazyLoadCounterVec("historydb_inserted_count", []string{"kind"})
)

func metricsHandleFilter(filter *Filter) {
	if !metrics.Enabled() {
		return
	}

	order := string(ASC)
	if filter.Order == DESC {
		order = string(DESC)
	}
	metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": order})

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"kinds": strconv.Itoa(len(filter.Kinds))})
	}
}

func metricsHandleInsert(events []*Event) {
	for _, ev := range events {
		metricInsertedCounter().AddWithLabel(1, map[string]string{"kind": string(ev.Kind)})
	}
}
