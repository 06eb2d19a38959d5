// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups. The zero value is ready to use.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int64 // last permille handed out by Permille
}

func (s *Stats) record(hit bool) {
	if hit {
		s.hit.Add(1)
	} else {
		s.miss.Add(1)
	}
}

func (s *Stats) Lookups() (hit, miss int64) {
	return s.hit.Load(), s.miss.Load()
}

// Permille returns the hit rate in permille, 0 before the first lookup, and
// whether it differs from the value returned by the previous call.
func (s *Stats) Permille() (int64, bool) {
	hit, miss := s.Lookups()
	var rate int64
	if hit+miss > 0 {
		rate = hit * 1000 / (hit + miss)
	}
	return rate, s.reported.Swap(rate) != rate
}
