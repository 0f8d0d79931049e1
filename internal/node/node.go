// Copyright 2026 The NFT-Gated Historical Archives authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	archives "github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/internal/config"
	"github.com/prometheus/client_golang/prometheus"
)

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")

	opts := []archives.ConfigOptionFunc{
		archives.WithLogger(logger),
		archives.WithDataDir(cfg.DataDir),
		archives.WithApiListenAddress(cfg.ApiListenAddress),
		archives.WithMetricsListenAddress(cfg.MetricsAddress),
		archives.WithMinVotesRequired(cfg.MinVotesRequired),
		archives.WithGenesisHeight(cfg.GenesisHeight),
		archives.WithTracing(cfg.Tracing),
		// Enable metrics with default prometheus registry
		archives.WithPrometheusRegistry(prometheus.DefaultRegisterer),
	}
	if cfg.GovernanceAddr != "" {
		opts = append(
			opts,
			archives.WithGovernanceAddr(chain.Identity(cfg.GovernanceAddr)),
		)
	}
	if cfg.FundingAddr != "" {
		opts = append(
			opts,
			archives.WithFundingAddr(chain.Identity(cfg.FundingAddr)),
		)
	}
	if cfg.OwnerAddr != "" {
		opts = append(
			opts,
			archives.WithOwnerAddr(chain.Identity(cfg.OwnerAddr)),
		)
	}
	if cfg.OracleAddr != "" {
		opts = append(
			opts,
			archives.WithOracleAddr(chain.Identity(cfg.OracleAddr)),
		)
	}
	if len(cfg.GenesisAccounts) > 0 {
		accounts := make(map[chain.Identity]uint64, len(cfg.GenesisAccounts))
		for id, amount := range cfg.GenesisAccounts {
			accounts[chain.Identity(id)] = amount
		}
		opts = append(opts, archives.WithGenesisAccounts(accounts))
	}

	n, err := archives.New(archives.NewConfig(opts...))
	if err != nil {
		return err
	}

	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	// Run node in goroutine
	errChan := make(chan error, 1)
	go func() {
		//nolint:contextcheck
		errChan <- n.Run(signalCtx)
	}()

	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")
		if err := n.Stop(); err != nil {
			logger.Error("shutdown errors occurred", "error", err)
			return err
		}
		logger.Info("shutdown complete")
		return nil
	case err := <-errChan:
		if err != nil {
			logger.Error("node error", "error", err)
		}
		return err
	}
}
