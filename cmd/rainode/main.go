// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

// Command rainode is the node's process entry point: load config, open the
// store, seed genesis if empty, and serve the RPC surface until signaled.
// The wire/peer/bootstrap/election machinery is wired here but the actual
// socket listeners are out of scope (§1) — this ties the in-scope pieces
// together the way a real node's main() would, short of dialing a socket.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/raiprotocol/rai/internal/genesis"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raicfg"
	"github.com/raiprotocol/rai/internal/railog"
	"github.com/raiprotocol/rai/internal/rpc"
)

// shutdownGrace bounds how long HTTP shutdown waits for in-flight requests
// to finish before forcing close.
const shutdownGrace = 5 * time.Second

func main() {
	os.Exit(run())
}

// run returns the process exit code (§6: "0 on clean shutdown, non-zero
// on fatal init").
func run() int {
	var (
		configPath = pflag.String("config", "rai.toml", "path to the node's TOML config file")
		rpcAddr    = pflag.String("rpc-addr", "127.0.0.1:7076", "address the JSON-RPC/websocket surface listens on")
		devLog     = pflag.Bool("dev", false, "use human-readable development logging instead of JSON")
	)
	pflag.Parse()

	if err := railog.Init(zapcore.InfoLevel, *devLog); err != nil {
		fmt.Fprintf(os.Stderr, "rainode: log init: %v\n", err)
		return 1
	}
	defer railog.Sync()
	log := railog.New("main")

	cfg, err := raicfg.Load(*configPath)
	if err != nil {
		log.Error("loading config")
		return 1
	}

	db, err := openStore(cfg)
	if err != nil {
		log.Error("opening store")
		return 1
	}
	defer db.Close()

	if err := ensureGenesis(db, cfg.Network); err != nil {
		log.Error("initializing genesis")
		return 1
	}

	srv := &rpc.Server{Ledger: rpc.NewLedgerView(db), Logger: railog.New("rpc")}
	mux := http.NewServeMux()
	mux.HandleFunc("/account_balance", srv.HandleAccountBalance)
	mux.HandleFunc("/account_block_count", srv.HandleAccountBlockCount)

	httpSrv := &http.Server{Addr: *rpcAddr, Handler: mux}
	serveErr := make(chan error, 1)
	go func() { serveErr <- httpSrv.ListenAndServe() }()

	log.Info("rainode started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error("rpc server failed")
			return 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("rpc server shutdown")
		return 1
	}
	return 0
}

func openStore(cfg raicfg.Config) (kv.DB, error) {
	if cfg.DataDir == "" {
		return kv.NewMemDB(), nil
	}
	return kv.OpenMdbx(cfg.DataDir)
}

func ensureGenesis(db kv.DB, variant raicfg.NetworkVariant) error {
	g, err := genesis.For(variant)
	if err != nil {
		return err
	}
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := genesis.Initialize(tx, g); err != nil {
		if err == genesis.ErrAlreadyInitialized {
			return nil
		}
		return err
	}
	return tx.Commit()
}
