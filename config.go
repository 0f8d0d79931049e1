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

package archives

import (
	"io"
	"log/slog"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/prometheus/client_golang/prometheus"
)

// Default component identities. These are stable well-known addresses on the
// hosting ledger; deployments override them through the config file or
// environment.
const (
	DefaultGovernanceAddr = chain.Identity("archives_governance")
	DefaultFundingAddr    = chain.Identity("archives_funding")
	DefaultOwnerAddr      = chain.Identity("archives_owner")
	DefaultOracleAddr     = chain.Identity("archives_oracle")
)

type Config struct {
	logger               *slog.Logger
	promRegistry         prometheus.Registerer
	genesisAccounts      map[chain.Identity]uint64
	dataDir              string
	apiListenAddress     string
	metricsListenAddress string
	governanceAddr       chain.Identity
	fundingAddr          chain.Identity
	ownerAddr            chain.Identity
	oracleAddr           chain.Identity
	minVotesRequired     uint64
	genesisHeight        uint64
	tracing              bool
}

// ConfigOptionFunc is a type that represents functions to modify our Config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new node config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger:           slog.New(slog.NewJSONHandler(io.Discard, nil)),
		promRegistry:     prometheus.NewRegistry(),
		governanceAddr:   DefaultGovernanceAddr,
		fundingAddr:      DefaultFundingAddr,
		ownerAddr:        DefaultOwnerAddr,
		oracleAddr:       DefaultOracleAddr,
		apiListenAddress: ":8080",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log
// output.
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDataDir specifies the persistent storage directory. An empty value
// keeps everything in memory.
func WithDataDir(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithPrometheusRegistry specifies a prometheus registry for metrics
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithApiListenAddress specifies the REST API listen address. An empty
// value disables the API.
func WithApiListenAddress(addr string) ConfigOptionFunc {
	return func(c *Config) {
		c.apiListenAddress = addr
	}
}

// WithMetricsListenAddress specifies the prometheus metrics listen address.
// An empty value disables the metrics listener.
func WithMetricsListenAddress(addr string) ConfigOptionFunc {
	return func(c *Config) {
		c.metricsListenAddress = addr
	}
}

// WithGovernanceAddr specifies the governance engine's ledger identity
func WithGovernanceAddr(addr chain.Identity) ConfigOptionFunc {
	return func(c *Config) {
		c.governanceAddr = addr
	}
}

// WithFundingAddr specifies the funding ledger's identity. The treasury's
// pooled value sits in this account.
func WithFundingAddr(addr chain.Identity) ConfigOptionFunc {
	return func(c *Config) {
		c.fundingAddr = addr
	}
}

// WithOwnerAddr specifies the administrating owner identity
func WithOwnerAddr(addr chain.Identity) ConfigOptionFunc {
	return func(c *Config) {
		c.ownerAddr = addr
	}
}

// WithOracleAddr specifies the oracle identity trusted to verify milestones
func WithOracleAddr(addr chain.Identity) ConfigOptionFunc {
	return func(c *Config) {
		c.oracleAddr = addr
	}
}

// WithMinVotesRequired specifies the genesis approval threshold. Zero keeps
// the built-in default.
func WithMinVotesRequired(minVotes uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.minVotesRequired = minVotes
	}
}

// WithGenesisAccounts specifies the initial native value distribution
func WithGenesisAccounts(accounts map[chain.Identity]uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.genesisAccounts = accounts
	}
}

// WithGenesisHeight specifies the ordering counter's starting value
func WithGenesisHeight(height uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.genesisHeight = height
	}
}

// WithTracing enables OpenTelemetry tracing on the metadata store
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}
