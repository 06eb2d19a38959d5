// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakevault/api/rewards"
	"github.com/vechain/stakevault/api/tiers"
	"github.com/vechain/stakevault/config"
	"github.com/vechain/stakevault/vault"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{configFlag, dataDirFlag, memoryFlag, disableHistoryFlag, cacheFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(newContext(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "vault.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseAPY: 700\ncooldownBlocks: 10\n"), 0600))
	cfg, err = loadConfig(newContext(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, uint64(700), cfg.BaseAPY)
	assert.Equal(t, uint64(10), cfg.CooldownBlocks)

	require.NoError(t, os.WriteFile(path, []byte("cooldownBlocks: 0\n"), 0600))
	_, err = loadConfig(newContext(t, "--config", path))
	assert.ErrorContains(t, err, path)
}

func TestOpenDatabases(t *testing.T) {
	dir := t.TempDir()
	ctx := newContext(t, "--data-dir", filepath.Join(dir, "data"))

	dataDir, err := makeDataDir(ctx)
	require.NoError(t, err)
	assert.DirExists(t, dataDir)

	mainDB, err := openMainDB(ctx, dataDir)
	require.NoError(t, err)
	defer mainDB.Close()
	history, err := openHistoryDB(ctx, dataDir)
	require.NoError(t, err)
	require.NotNil(t, history)
	defer history.Close()
	assert.FileExists(t, filepath.Join(dataDir, "history.db"))

	history, err = openHistoryDB(newContext(t, "--disable-history"), dataDir)
	assert.NoError(t, err)
	assert.Nil(t, history)

	memDB, err := openMainDB(newContext(t, "--memory"), "")
	require.NoError(t, err)
	memDB.Close()
}

func TestPrintTiers(t *testing.T) {
	model, err := newModel(config.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	printTiers(&buf, tiers.New(model).List())
	out := buf.String()
	for _, want := range []string{"Bronze", "Silver", "Gold", "1.3x", "1.6x", "10000 " + vault.TokenSymbol, "8.00"} {
		assert.Contains(t, out, want)
	}
}

func TestPrintEstimate(t *testing.T) {
	model, err := newModel(config.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	printEstimate(&buf, rewards.New(model).Estimate(1_500*vault.MicroPerToken, vault.BlocksPerYear))
	out := buf.String()
	assert.Contains(t, out, "Silver")
	assert.Contains(t, out, "97.5 "+vault.TokenSymbol)
	assert.Contains(t, out, "1500 "+vault.TokenSymbol)
}

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "1x", formatMultiplier(10_000))
	assert.Equal(t, "1.25x", formatMultiplier(12_500))
	assert.Equal(t, "0.5x", formatMultiplier(5_000))
}
