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

// Package archives wires the grant-funding pipeline together: the hosting
// ledger substrate, the sqlite/badger stores, the governance and funding
// engines, the domain event archive, and the read-only REST API.
package archives

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/api"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/event"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/funding"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/governance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// archivedEventTypes is the set of domain events persisted to the
// append-only archive for external indexers
var archivedEventTypes = []event.EventType{
	event.ProposalSubmittedEventType,
	event.VoteCastEventType,
	event.ProposalApprovedEventType,
	event.ProposalRejectedEventType,
	event.ProposalCancelledEventType,
	event.ProjectCreatedEventType,
	event.MilestoneVerifiedEventType,
	event.MilestoneDisbursedEventType,
	event.ProjectCancelledEventType,
	event.TreasuryDepositEventType,
	event.TreasuryWithdrawalEventType,
}

type Node struct {
	config        Config
	eventBus      *event.EventBus
	db            *database.Database
	runtime       *chain.Runtime
	governance    *governance.Engine
	funding       *funding.Ledger
	api           *api.Api
	metricsServer *http.Server
	done          chan struct{}
	shutdownOnce  sync.Once
}

// New creates a node from the given config
func New(cfg Config) (*Node, error) {
	n := &Node{
		config: cfg,
		done:   make(chan struct{}),
	}
	if err := n.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return n, nil
}

func (n *Node) configValidate() error {
	if n.config.governanceAddr == "" ||
		n.config.fundingAddr == "" ||
		n.config.ownerAddr == "" ||
		n.config.oracleAddr == "" {
		return chain.ErrEmptyIdentity
	}
	if n.config.governanceAddr == n.config.fundingAddr {
		return errors.New(
			"governance and funding identities cannot be the same",
		)
	}
	return nil
}

// Run starts all components and blocks until the context is cancelled or an
// unrecoverable error occurs
func (n *Node) Run(ctx context.Context) error {
	n.eventBus = event.NewEventBus(n.config.promRegistry, n.config.logger)
	// Load database
	db, err := database.New(&database.Config{
		Logger:       n.config.logger,
		PromRegistry: n.config.promRegistry,
		DataDir:      n.config.dataDir,
		Tracing:      n.config.tracing,
	})
	if err != nil {
		if db != nil {
			db.Close()
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	n.db = db
	// Load ledger substrate
	n.runtime = chain.NewRuntime(chain.RuntimeConfig{
		Logger:          n.config.logger,
		EventBus:        n.eventBus,
		PromRegistry:    n.config.promRegistry,
		GenesisAccounts: n.config.genesisAccounts,
		GenesisHeight:   n.config.genesisHeight,
	})
	// Load funding ledger
	n.funding, err = funding.New(funding.Config{
		Logger:         n.config.logger,
		Database:       n.db,
		Runtime:        n.runtime,
		LedgerAddr:     n.config.fundingAddr,
		GovernanceAddr: n.config.governanceAddr,
		OracleAddr:     n.config.oracleAddr,
		OwnerAddr:      n.config.ownerAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to load funding ledger: %w", err)
	}
	// Load governance engine
	n.governance, err = governance.New(governance.Config{
		Logger:           n.config.logger,
		Database:         n.db,
		Runtime:          n.runtime,
		Projects:         n.funding,
		EngineAddr:       n.config.governanceAddr,
		OwnerAddr:        n.config.ownerAddr,
		MinVotesRequired: n.config.minVotesRequired,
	})
	if err != nil {
		return fmt.Errorf("failed to load governance engine: %w", err)
	}
	// Archive committed domain events for external indexers
	for _, eventType := range archivedEventTypes {
		n.eventBus.SubscribeFunc(eventType, n.archiveEvent)
	}
	// Start REST API
	if n.config.apiListenAddress != "" {
		n.api = api.New(
			api.Config{ListenAddress: n.config.apiListenAddress},
			n.db,
			n.runtime,
			n.config.logger,
		)
		if err := n.api.Start(ctx); err != nil {
			return err
		}
	}
	// Start metrics listener
	if n.config.metricsListenAddress != "" {
		if err := n.startMetricsListener(); err != nil {
			return err
		}
	}
	n.config.logger.Info(
		"node started",
		"component", "node",
		"data_dir", n.config.dataDir,
		"height", n.runtime.Height(),
	)
	// Wait for shutdown
	select {
	case <-ctx.Done():
	case <-n.done:
	}
	return n.shutdown()
}

// Stop shuts the node down
func (n *Node) Stop() error {
	return n.shutdown()
}

func (n *Node) shutdown() error {
	var err error
	n.shutdownOnce.Do(func() {
		close(n.done)
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			30*time.Second,
		)
		defer cancel()
		if n.api != nil {
			err = errors.Join(err, n.api.Stop(shutdownCtx))
		}
		if n.metricsServer != nil {
			err = errors.Join(err, n.metricsServer.Shutdown(shutdownCtx))
		}
		if n.eventBus != nil {
			n.eventBus.Stop()
		}
		if n.db != nil {
			err = errors.Join(err, n.db.Close())
		}
	})
	return err
}

// archiveEvent appends a committed domain event to the badger archive
func (n *Node) archiveEvent(evt event.Event) {
	if _, err := n.db.AppendEvent(
		n.runtime.Height(),
		evt.Timestamp.Unix(),
		string(evt.Type),
		evt.Data,
	); err != nil {
		n.config.logger.Error(
			"failed to archive event",
			"component", "node",
			"type", string(evt.Type),
			"error", err,
		)
	}
}

func (n *Node) startMetricsListener() error {
	metricsHandler := promhttp.Handler()
	if gatherer, ok := n.config.promRegistry.(prometheus.Gatherer); ok {
		metricsHandler = promhttp.HandlerFor(
			gatherer,
			promhttp.HandlerOpts{},
		)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	n.metricsServer = &http.Server{
		Addr:              n.config.metricsListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := n.metricsServer.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			n.config.logger.Error(
				"metrics listener error",
				"component", "node",
				"error", err,
			)
		}
	}()
	n.config.logger.Info(
		"serving prometheus metrics on "+n.config.metricsListenAddress,
		"component", "node",
	)
	return nil
}

// Database returns the underlying database
func (n *Node) Database() *database.Database {
	return n.db
}

// Runtime returns the hosting ledger substrate
func (n *Node) Runtime() *chain.Runtime {
	return n.runtime
}

// Governance returns the governance engine
func (n *Node) Governance() *governance.Engine {
	return n.governance
}

// Funding returns the funding ledger
func (n *Node) Funding() *funding.Ledger {
	return n.funding
}

// EventBus returns the node's event bus
func (n *Node) EventBus() *event.EventBus {
	return n.eventBus
}
