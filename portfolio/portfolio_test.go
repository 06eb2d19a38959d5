// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package portfolio

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/reward"
	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
	"github.com/vechain/stakevault/withdrawal"
)

const token = vault.MicroPerToken

func newFixture(t *testing.T, mode withdrawal.ReserveMode) (*Aggregator, *position.Model, *withdrawal.Machine) {
	model := position.NewModel(
		tier.MustNewTable(tier.DefaultTiers()),
		reward.MustNew(vault.DefaultBaseAPY, vault.BlocksPerYear),
	)
	return New(model, vault.BlockInterval), model, withdrawal.NewMachine(model, vault.CooldownBlocks, mode)
}

func TestBuild_NoPosition(t *testing.T) {
	agg, _, _ := newFixture(t, withdrawal.ReserveOnRequest)

	snap := agg.Build(Input{WalletBalance: 250 * token, Position: position.New("alice"), CurrentBlock: 10})
	assert.Equal(t, "alice", snap.Principal)
	assert.Equal(t, uint64(250*token), snap.TotalValue)
	assert.Equal(t, "250", snap.TotalTokens)
	assert.Equal(t, "", snap.TotalUSD)
	assert.Equal(t, "0.00", snap.EffectiveAPY)
	assert.Equal(t, "Bronze", snap.Tier.Name)
	assert.Nil(t, snap.Cooldown)
}

func TestBuild_WithCooldown(t *testing.T) {
	agg, model, machine := newFixture(t, withdrawal.ReserveOnRequest)

	p, err := model.ApplyStake(position.New("alice"), 1000*token, 0)
	require.NoError(t, err)
	p, req, err := machine.Request(p, nil, 500*token, 100)
	require.NoError(t, err)
	req.ID = "w-1"

	snap := agg.Build(Input{
		WalletBalance: 10 * token,
		Position:      p,
		Withdrawal:    req,
		CurrentBlock:  200,
		PriceUSD:      big.NewRat(2, 1),
	})

	assert.Equal(t, uint64(500*token), snap.StakedAmount)
	assert.Equal(t, uint64(500*token), snap.ReservedAmount)
	assert.Equal(t, "5.00", snap.EffectiveAPY)
	require.NotNil(t, snap.Cooldown)
	assert.Equal(t, "w-1", snap.Cooldown.RequestID)
	assert.Equal(t, withdrawal.StatusRequested, snap.Cooldown.Status)
	assert.Equal(t, uint64(244), snap.Cooldown.ReadyBlock)
	assert.Equal(t, uint64(44), snap.Cooldown.BlocksRemaining)
	assert.Equal(t, uint64(44*10*60), snap.Cooldown.SecondsRemaining)
	assert.Equal(t, (440 * time.Minute).String(), snap.Cooldown.ReadyIn)

	// rewards are projected to the current block without touching the input
	projected, err := model.Accrue(p, 200)
	require.NoError(t, err)
	assert.Equal(t, projected.PendingRewards, snap.PendingRewards)
	assert.Less(t, p.PendingRewards, snap.PendingRewards)

	total := 10*token + 500*token + 500*token + snap.PendingRewards
	assert.Equal(t, total, snap.TotalValue)
	assert.Equal(t, vault.FormatUSD(total, big.NewRat(2, 1)), snap.TotalUSD)

	ready := agg.Build(Input{Position: p, Withdrawal: req, CurrentBlock: 300})
	assert.Equal(t, withdrawal.StatusReady, ready.Cooldown.Status)
	assert.Zero(t, ready.Cooldown.BlocksRemaining)
	assert.Equal(t, "0s", ready.Cooldown.ReadyIn)
}

func TestBuild_ReserveOnCompletion(t *testing.T) {
	agg, model, machine := newFixture(t, withdrawal.ReserveOnCompletion)

	p, err := model.ApplyStake(position.New("bob"), 10_000*token, 0)
	require.NoError(t, err)
	p, req, err := machine.Request(p, nil, 5_000*token, 0)
	require.NoError(t, err)

	snap := agg.Build(Input{Position: p, Withdrawal: req, CurrentBlock: 1})
	assert.Equal(t, uint64(10_000*token), snap.StakedAmount)
	assert.Zero(t, snap.ReservedAmount)
	assert.Equal(t, "8.00", snap.EffectiveAPY)
	assert.Nil(t, snap.Progress.Next)
	require.NotNil(t, snap.Cooldown)
	assert.Equal(t, uint64(143), snap.Cooldown.BlocksRemaining)
}

func TestBuild_TerminalRequestIgnored(t *testing.T) {
	agg, _, _ := newFixture(t, withdrawal.ReserveOnRequest)
	req := &withdrawal.Request{Status: withdrawal.StatusCompleted, Amount: 5, Reserved: true}

	snap := agg.Build(Input{Position: position.New("carol"), Withdrawal: req})
	assert.Nil(t, snap.Cooldown)
	assert.Zero(t, snap.ReservedAmount)
}

func TestBuild_JSON(t *testing.T) {
	agg, _, _ := newFixture(t, withdrawal.ReserveOnRequest)
	data, err := json.Marshal(agg.Build(Input{Position: position.New("dave")}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"principal":"dave"`)
	assert.NotContains(t, string(data), "cooldown")
	assert.NotContains(t, string(data), "totalUSD")
}

func TestSum_Saturates(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), sum(math.MaxUint64, 1))
	assert.Equal(t, uint64(6), sum(1, 2, 3))
}
