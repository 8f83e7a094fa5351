// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/econ/api"
	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/genesis"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/logdb"
	"github.com/vechain/econ/metrics"
	"github.com/vechain/econ/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Name:      "econ",
		Usage:     "Economic control plane: pricing, bounty and delegation",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			skipLogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			disableKeeperFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "init",
				Usage: "Build genesis state from a yaml config",
				Flags: []cli.Flag{
					configFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: initAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx, os.Stderr, stderrIsTerminal())

	path := ctx.String(configFlag.Name)
	if path == "" {
		return fmt.Errorf("missing genesis config, use -%s to specify", configFlag.Name)
	}
	cfg, err := genesis.Load(path)
	if err != nil {
		return err
	}
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	mainDB, err := openMainDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer mainDB.Close()

	ok, err := initialized(builtin.NewStater(mainDB, nil))
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("data dir [%v] already initialized", dataDir)
	}
	contracts, err := cfg.Builder().Build(mainDB)
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	price, err := contracts.Pricing.Price()
	if err != nil {
		return err
	}
	count, err := contracts.Nodes.ActiveNodeCount()
	if err != nil {
		return err
	}
	log.Info("genesis built", "dir", dataDir, "owner", cfg.Owner, "nodes", count, "price", price)
	return nil
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	initLogger(ctx, os.Stderr, stderrIsTerminal())

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	mainDB, err := openMainDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	stater := builtin.NewStater(mainDB, nil)
	ok, err := initialized(stater)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("data dir [%v] not initialized, run init first", dataDir)
	}

	var logDB *logdb.LogDB
	if !ctx.Bool(skipLogsFlag.Name) {
		if logDB, err = openLogDB(dataDir); err != nil {
			return err
		}
		defer func() { log.Info("closing log database..."); logDB.Close() }()
	}

	contracts := builtin.New(state.New(mainDB), nil)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, gctx := errgroup.WithContext(runCtx)

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
		group.Go(func() error { return serveMetrics(gctx, ctx.String(metricsAddrFlag.Name)) })
	}

	reqLogs, slowThreshold := apiOptions(ctx)
	handler, closeSubs := api.New(stater, logDB, contracts.Pricing, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      reqLogs,
		SlowQueriesThreshold: slowThreshold,
		EnableMetrics:        enableMetrics,
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
	})
	defer closeSubs()

	var apiHandler http.Handler = handler
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		apiHandler = handleAPITimeout(apiHandler, time.Duration(timeout)*time.Millisecond)
	}
	group.Go(func() error { return serve(gctx, "API", ctx.String(apiAddrFlag.Name), apiHandler) })

	if logDB != nil {
		group.Go(func() error {
			return logDB.Record(gctx, contracts.Pricing, contracts.Bounty, contracts.Delegation)
		})
	}
	if !ctx.Bool(disableKeeperFlag.Name) {
		group.Go(func() error { return newPriceKeeper(contracts).Run(gctx) })
	}

	return group.Wait()
}
