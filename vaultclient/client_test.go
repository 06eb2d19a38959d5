// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaultclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakevault/api"
	"github.com/vechain/stakevault/config"
	"github.com/vechain/stakevault/historydb"
	"github.com/vechain/stakevault/lvldb"
	"github.com/vechain/stakevault/staker"
	"github.com/vechain/stakevault/vault"
	"github.com/vechain/stakevault/vault/reverts"
	"github.com/vechain/stakevault/vaultclient"
	"github.com/vechain/stakevault/withdrawal"
)

const token = vault.MicroPerToken

func newTestClient(t *testing.T, withHistory bool) *vaultclient.Client {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var history *historydb.HistoryDB
	if withHistory {
		history, err = historydb.NewMem()
		require.NoError(t, err)
		t.Cleanup(func() { history.Close() })
	}

	cfg := config.Default()
	cfg.PriceUSD = "2"
	s, err := staker.New(db, history, cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(api.New(s, api.Options{AllowedOrigins: "*", HistoryLimit: 10}))
	t.Cleanup(ts.Close)

	return vaultclient.New(ts.URL)
}

func TestClient_GetTiers(t *testing.T) {
	c := newTestClient(t, false)

	tiers, err := c.GetTiers()
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, "Bronze", tiers[0].Name)
	assert.Equal(t, "5.00", tiers[0].APY)
	assert.Equal(t, "Gold", tiers[2].Name)
	assert.Equal(t, uint64(800), tiers[2].APYBasisPoints)
}

func TestClient_Estimate(t *testing.T) {
	c := newTestClient(t, false)

	est, err := c.Estimate(1_500*token, 0)
	require.NoError(t, err)
	assert.Equal(t, vault.BlocksPerYear, est.Blocks)
	assert.Equal(t, "Silver", est.Tier.Name)
	assert.Equal(t, uint64(97_500_000), est.Reward)
	assert.Equal(t, "97.5", est.RewardTokens)

	est, err = c.Estimate(100*token, vault.BlocksPerDay)
	require.NoError(t, err)
	assert.Equal(t, "Bronze", est.Tier.Name)
	assert.Equal(t, uint64(100*token*500/10_000/365), est.Reward)
}

func TestClient_Lifecycle(t *testing.T) {
	c := newTestClient(t, true)

	pos, err := c.Stake("alice", 1_500*token, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500*token), pos.Position.StakedAmount)
	assert.Equal(t, "Silver", pos.TierName)
	assert.Equal(t, "6.50", pos.APY)

	pos, err = c.GetPosition("alice", 100+vault.BlocksPerYear)
	require.NoError(t, err)
	assert.Equal(t, uint64(97_500_000), pos.Position.PendingRewards)

	claim, err := c.Claim("alice", 100+vault.BlocksPerYear)
	require.NoError(t, err)
	assert.Equal(t, uint64(97_500_000), claim.Claimed)
	assert.Equal(t, uint64(97_500_000), claim.Position.ClaimedRewards)
	assert.Zero(t, claim.Position.PendingRewards)

	block := 100 + vault.BlocksPerYear
	res, err := c.RequestWithdrawal("alice", 500*token, block)
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusRequested, res.Withdrawal.Status)
	assert.Equal(t, uint64(1_000*token), res.Position.StakedAmount)
	assert.NotEmpty(t, res.Withdrawal.ID)

	pos, err = c.GetPosition("alice", block)
	require.NoError(t, err)
	require.NotNil(t, pos.Withdrawal)
	assert.Equal(t, res.Withdrawal.ID, pos.Withdrawal.ID)

	snap, err := c.GetPortfolio("alice", 10*token, block+10, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(500*token), snap.ReservedAmount)
	require.NotNil(t, snap.Cooldown)
	assert.Equal(t, vault.CooldownBlocks-10, snap.Cooldown.BlocksRemaining)
	assert.NotEmpty(t, snap.TotalUSD)

	_, err = c.CompleteWithdrawal("alice", block+vault.CooldownBlocks-1)
	assert.Equal(t, reverts.ErrCooldownNotElapsed.Code(), vaultclient.RevertCode(err))

	res, err = c.CompleteWithdrawal("alice", block+vault.CooldownBlocks)
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusCompleted, res.Withdrawal.Status)
	assert.Equal(t, uint64(500*token), res.Amount)

	events, err := c.GetHistory("alice", nil)
	require.NoError(t, err)
	kinds := make([]historydb.Kind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []historydb.Kind{
		historydb.KindStake,
		historydb.KindClaim,
		historydb.KindWithdrawalRequested,
		historydb.KindWithdrawalCompleted,
	}, kinds)

	events, err = c.GetHistory("alice", &vaultclient.HistoryQuery{
		Kinds: []historydb.Kind{historydb.KindClaim},
		Order: historydb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(97_500_000), events[0].Amount)

	status, err := c.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), status.Positions)
	assert.Equal(t, uint64(1_000*token), status.StakedAmount)
	assert.True(t, status.HistoryEnabled)
}

func TestClient_Cancel(t *testing.T) {
	c := newTestClient(t, false)

	_, err := c.Stake("bob", 20_000*token, 1)
	require.NoError(t, err)
	_, err = c.RequestWithdrawal("bob", 15_000*token, 2)
	require.NoError(t, err)

	_, err = c.RequestWithdrawal("bob", token, 3)
	assert.Equal(t, reverts.ErrWithdrawalAlreadyPending.Code(), vaultclient.RevertCode(err))

	res, err := c.CancelWithdrawal("bob", 4)
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusCancelled, res.Withdrawal.Status)
	assert.Equal(t, uint64(20_000*token), res.Position.StakedAmount)

	_, err = c.CancelWithdrawal("bob", 5)
	assert.Equal(t, reverts.ErrWithdrawalNotPending.Code(), vaultclient.RevertCode(err))
}

func TestClient_StakeWithPendingWithdrawal(t *testing.T) {
	c := newTestClient(t, false)

	pos, err := c.Stake("erin", 2_000*token, 1)
	require.NoError(t, err)
	assert.Nil(t, pos.Withdrawal)

	res, err := c.RequestWithdrawal("erin", 500*token, 2)
	require.NoError(t, err)

	pos, err = c.Stake("erin", 100*token, 3)
	require.NoError(t, err)
	require.NotNil(t, pos.Withdrawal)
	assert.Equal(t, res.Withdrawal.ID, pos.Withdrawal.ID)

	got, err := c.GetPosition("erin", 3)
	require.NoError(t, err)
	assert.Equal(t, got.Withdrawal, pos.Withdrawal)
	assert.Equal(t, got.Position, pos.Position)
}

func TestClient_Errors(t *testing.T) {
	c := newTestClient(t, false)

	tests := []struct {
		name   string
		call   func() error
		status int
		code   string
	}{
		{
			name:   "zero stake",
			call:   func() error { _, err := c.Stake("carol", 0, 1); return err },
			status: http.StatusBadRequest,
			code:   reverts.ErrInvalidStakeAmount.Code(),
		},
		{
			name:   "nothing to claim",
			call:   func() error { _, err := c.Claim("carol", 1); return err },
			status: http.StatusBadRequest,
			code:   reverts.ErrInsufficientRewards.Code(),
		},
		{
			name:   "withdraw more than staked",
			call:   func() error { _, err := c.RequestWithdrawal("carol", token, 1); return err },
			status: http.StatusBadRequest,
			code:   reverts.ErrInvalidWithdrawalAmount.Code(),
		},
		{
			name:   "history disabled",
			call:   func() error { _, err := c.GetHistory("carol", nil); return err },
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)

			var se *vaultclient.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.code, se.Code)
			if tt.status == http.StatusNotFound {
				assert.ErrorIs(t, err, vaultclient.ErrNotFound)
			} else {
				assert.ErrorIs(t, err, vaultclient.ErrNot200Status)
			}
		})
	}
}

func TestClient_BlockRegression(t *testing.T) {
	c := newTestClient(t, false)

	_, err := c.Stake("dave", token, 100)
	require.NoError(t, err)

	_, err = c.Stake("dave", token, 99)
	var se *vaultclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Empty(t, se.Code)
}

func TestClient_Raw(t *testing.T) {
	c := newTestClient(t, false)

	body, code, err := c.RawHTTPPost("/positions/erin/stake", []byte(`{"amount":"1","block":1,"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "unknown field")

	body, code, err = c.RawHTTPPost("/positions/erin/stake", []byte(`{"amount":1,"block":1}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, code, "amounts are strings")
	assert.NotEmpty(t, body)

	_, code, err = c.RawHTTPGet("/estimate")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)

	_, code, err = c.RawHTTPGet("/positions/erin?block=abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)

	_, code, err = c.RawHTTPGet("/positions/erin/portfolio?price=-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)

	body, code, err = c.RawHTTPGet("/doc/stakevault.yaml")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "openapi:")
}
