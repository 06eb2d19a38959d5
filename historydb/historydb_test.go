// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakevault/historydb"
)

func newEvents() []*historydb.Event {
	return []*historydb.Event{
		{Principal: "alice", Kind: historydb.KindStake, BlockNumber: 100, Amount: 1_000_000_000, StakedAfter: 1_000_000_000, Tier: 1},
		{Principal: "bob", Kind: historydb.KindStake, BlockNumber: 101, Amount: 5_000_000, StakedAfter: 5_000_000},
		{Principal: "alice", Kind: historydb.KindClaim, BlockNumber: 200, Amount: 12_345, StakedAfter: 1_000_000_000, Tier: 1},
		{Principal: "alice", Kind: historydb.KindWithdrawalRequested, BlockNumber: 200, Amount: 500_000_000, RequestID: "r1", StakedAfter: 500_000_000},
		{Principal: "alice", Kind: historydb.KindWithdrawalCompleted, BlockNumber: 344, Amount: 500_000_000, RequestID: "r1", StakedAfter: 500_000_000},
	}
}

func TestInsertAndFilter(t *testing.T) {
	db, err := historydb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	events := newEvents()
	require.NoError(t, db.Insert(events...))
	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}

	ctx := context.Background()

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, events, all)

	alice, err := db.Filter(ctx, &historydb.Filter{Principal: "alice"})
	require.NoError(t, err)
	require.Len(t, alice, 4)
	assert.Equal(t, historydb.KindStake, alice[0].Kind)
	assert.Equal(t, historydb.KindClaim, alice[1].Kind, "same block keeps insertion order")
	assert.Equal(t, historydb.KindWithdrawalRequested, alice[2].Kind)

	desc, err := db.Filter(ctx, &historydb.Filter{Principal: "alice", Order: historydb.DESC})
	require.NoError(t, err)
	require.Len(t, desc, 4)
	assert.Equal(t, historydb.KindWithdrawalCompleted, desc[0].Kind)
	assert.Equal(t, historydb.KindWithdrawalRequested, desc[1].Kind)

	ranged, err := db.Filter(ctx, &historydb.Filter{Principal: "alice", Range: &historydb.Range{From: 150, To: 300}})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	open, err := db.Filter(ctx, &historydb.Filter{Principal: "alice", Range: &historydb.Range{From: 200}})
	require.NoError(t, err)
	assert.Len(t, open, 3)

	kinds, err := db.Filter(ctx, &historydb.Filter{
		Principal: "alice",
		Kinds:     []historydb.Kind{historydb.KindWithdrawalRequested, historydb.KindWithdrawalCompleted},
	})
	require.NoError(t, err)
	require.Len(t, kinds, 2)
	assert.Equal(t, "r1", kinds[0].RequestID)

	paged, err := db.Filter(ctx, &historydb.Filter{Principal: "alice", Options: &historydb.Options{Offset: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, historydb.KindClaim, paged[0].Kind)

	none, err := db.Filter(ctx, &historydb.Filter{Principal: "carol"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLargeAmounts(t *testing.T) {
	db, err := historydb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ev := &historydb.Event{Principal: "whale", Kind: historydb.KindStake, BlockNumber: 1, Amount: math.MaxUint64, StakedAfter: math.MaxUint64 - 1}
	require.NoError(t, db.Insert(ev))

	got, err := db.Filter(context.Background(), &historydb.Filter{Principal: "whale"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(math.MaxUint64), got[0].Amount)
	assert.Equal(t, uint64(math.MaxUint64-1), got[0].StakedAfter)
}

func TestPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := historydb.New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	require.NoError(t, db.Insert(newEvents()...))
	require.NoError(t, db.Close())

	db, err = historydb.New(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Filter(context.Background(), &historydb.Filter{Principal: "bob"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(5_000_000), got[0].Amount)
}

func TestFilterCancelled(t *testing.T) {
	db, err := historydb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Insert(newEvents()...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Filter(ctx, &historydb.Filter{Principal: "alice"})
	assert.Error(t, err)
}
