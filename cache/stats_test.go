// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsPermille(t *testing.T) {
	var s Stats

	rate, changed := s.Permille()
	assert.Zero(t, rate)
	assert.False(t, changed)

	s.record(true)
	s.record(false)
	rate, changed = s.Permille()
	assert.Equal(t, int64(500), rate)
	assert.True(t, changed)

	_, changed = s.Permille()
	assert.False(t, changed, "unchanged since last call")

	s.record(true)
	s.record(true)
	s.record(false)
	hit, miss := s.Lookups()
	assert.Equal(t, int64(3), hit)
	assert.Equal(t, int64(2), miss)

	rate, changed = s.Permille()
	assert.Equal(t, int64(600), rate)
	assert.True(t, changed)
}
