// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakevault/api"
	"github.com/vechain/stakevault/api/admin"
	"github.com/vechain/stakevault/api/rewards"
	"github.com/vechain/stakevault/api/tiers"
	"github.com/vechain/stakevault/cmd/stakevault/httpserver"
	"github.com/vechain/stakevault/log"
	"github.com/vechain/stakevault/metrics"
	"github.com/vechain/stakevault/staker"
	"github.com/vechain/stakevault/vault"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "StakeVault",
		Usage:     "Tiered staking vault with block based reward accrual",
		Copyright: "2026 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			memoryFlag,
			cacheFlag,
			disableHistoryFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiHistoryLimitFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			verbosityFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: serveAction,
		Commands: []cli.Command{
			{
				Name:   "tiers",
				Usage:  "print the tier table",
				Flags:  []cli.Flag{configFlag},
				Action: tiersAction,
			},
			{
				Name:   "estimate",
				Usage:  "estimate the reward of a fresh stake",
				Flags:  []cli.Flag{configFlag, amountFlag, blocksFlag},
				Action: estimateAction,
			},
			{
				Name:   "config",
				Usage:  "print the effective config as YAML",
				Flags:  []cli.Flag{configFlag},
				Action: configAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	var dataDir string
	if ctx.Bool(memoryFlag.Name) {
		dataDir = "memory"
	} else {
		if dataDir, err = makeDataDir(ctx); err != nil {
			return err
		}
	}

	mainDB, err := openMainDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	history, err := openHistoryDB(ctx, dataDir)
	if err != nil {
		return err
	}
	if history != nil {
		defer func() { logger.Info("closing history database..."); history.Close() }()
	}

	s, err := staker.New(mainDB, history, cfg)
	if err != nil {
		return errors.Wrap(err, "init staker")
	}

	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(s, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		HistoryLimit:         ctx.Uint64(apiHistoryLimitFlag.Name),
	})

	apiSrv, err := httpserver.New(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	servers := []*httpserver.Server{apiSrv}
	closeAll := func() {
		for _, srv := range servers {
			srv.Close()
		}
	}

	var metricsSrv, adminSrv *httpserver.Server
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsSrv, err = httpserver.NewMetrics(ctx.String(metricsAddrFlag.Name)); err != nil {
			closeAll()
			return err
		}
		servers = append(servers, metricsSrv)
	}
	if ctx.Bool(enableAdminFlag.Name) {
		if adminSrv, err = httpserver.New(ctx.String(adminAddrFlag.Name), admin.New(logLevel, enableAPILogs)); err != nil {
			closeAll()
			return err
		}
		servers = append(servers, adminSrv)
	}

	printStartupMessage(cfg, dataDir, apiSrv, metricsSrv, adminSrv)

	g, gctx := errgroup.WithContext(handleExitSignal())
	for _, srv := range servers {
		g.Go(func() error { return srv.Run(gctx) })
	}
	return g.Wait()
}

func tiersAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	printTiers(os.Stdout, tiers.New(model).List())
	return nil
}

func estimateAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet(amountFlag.Name) {
		return errors.Errorf("missing --%s", amountFlag.Name)
	}
	amount, err := vault.ParseTokens(ctx.String(amountFlag.Name))
	if err != nil {
		return errors.WithMessage(err, amountFlag.Name)
	}
	blocks := cfg.BlocksPerYear
	if ctx.IsSet(blocksFlag.Name) {
		blocks = ctx.Uint64(blocksFlag.Name)
	}

	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	printEstimate(os.Stdout, rewards.New(model).Estimate(amount, blocks))
	return nil
}

func configAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Encode(os.Stdout)
}
