// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakevault/api/rewards"
	"github.com/vechain/stakevault/api/tiers"
	"github.com/vechain/stakevault/cmd/stakevault/httpserver"
	"github.com/vechain/stakevault/config"
	"github.com/vechain/stakevault/historydb"
	"github.com/vechain/stakevault/log"
	"github.com/vechain/stakevault/lvldb"
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/vault"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return log.Init(os.Stderr, ctx.Int(verbosityFlag.Name), useColor)
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		path = ctx.GlobalString(configFlag.Name)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load config [%v]", path)
	}
	return cfg, nil
}

func newModel(cfg *config.Config) (*position.Model, error) {
	table, err := cfg.TierTable()
	if err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	return position.NewModel(table, engine), nil
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openMainDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	if ctx.Bool(memoryFlag.Name) {
		return lvldb.NewMem()
	}
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheMB:   ctx.Int(cacheFlag.Name),
		OpenFiles: 64,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open main database [%v]", dir)
	}
	return db, nil
}

// openHistoryDB returns nil when history is disabled.
func openHistoryDB(ctx *cli.Context, dataDir string) (*historydb.HistoryDB, error) {
	if ctx.Bool(disableHistoryFlag.Name) {
		return nil, nil
	}
	if ctx.Bool(memoryFlag.Name) {
		return historydb.NewMem()
	}
	dir := filepath.Join(dataDir, "history.db")
	db, err := historydb.New(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "open history database [%v]", dir)
	}
	return db, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(cfg *config.Config, dataDir string, apiSrv, metricsSrv, adminSrv *httpserver.Server) {
	metricsURL := "Disabled"
	if metricsSrv != nil {
		metricsURL = metricsSrv.URL() + "/metrics"
	}
	adminURL := "Disabled"
	if adminSrv != nil {
		adminURL = adminSrv.URL() + "/admin"
	}
	fmt.Printf(`Starting %v
    Base APY       [ %v bps ]
    Tiers          [ %v ]
    Cooldown       [ %v blocks, reserve on %v ]
    Data dir       [ %v ]
    API portal     [ %v ]
    Metrics        [ %v ]
    Admin          [ %v ]
`,
		fullVersion(),
		cfg.BaseAPY,
		len(cfg.Tiers),
		cfg.CooldownBlocks, cfg.ReserveMode,
		dataDir,
		apiSrv.URL(),
		metricsURL,
		adminURL)
}

func printTiers(w io.Writer, list []tiers.Tier) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Name", "Min Stake", "Multiplier", "APY %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, t := range list {
		table.Append([]string{
			strconv.Itoa(int(t.Level)),
			t.Name,
			strconv.FormatUint(t.MinStake, 10) + " " + vault.TokenSymbol,
			formatMultiplier(t.Multiplier),
			t.APY,
		})
	}
	table.Render()
}

func printEstimate(w io.Writer, est *rewards.Estimate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Amount", "Blocks", "Tier", "APY %", "Reward"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		vault.FormatMicro(est.Amount) + " " + vault.TokenSymbol,
		strconv.FormatUint(est.Blocks, 10),
		est.Tier.Name,
		est.APY,
		est.RewardTokens + " " + vault.TokenSymbol,
	})
	table.Render()
}

// formatMultiplier renders basis points as a factor, eg. 13000 => 1.3x.
func formatMultiplier(bps uint64) string {
	return strconv.FormatFloat(float64(bps)/float64(vault.BasisPoints), 'f', -1, 64) + "x"
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.stakevault")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.stakevault")
		default:
			return filepath.Join(home, ".org.vechain.stakevault")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
