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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "archivenode.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	// GenesisAccounts is the initial native value distribution, keyed by
	// ledger identity. Only settable through the config file.
	GenesisAccounts  map[string]uint64 `yaml:"genesisAccounts"`
	DataDir          string            `yaml:"dataDir"          split_words:"true"`
	ApiListenAddress string            `yaml:"apiListenAddress" envconfig:"API_LISTEN_ADDRESS"`
	MetricsAddress   string            `yaml:"metricsAddress"   split_words:"true"`
	GovernanceAddr   string            `yaml:"governanceAddr"   split_words:"true"`
	FundingAddr      string            `yaml:"fundingAddr"      split_words:"true"`
	OwnerAddr        string            `yaml:"ownerAddr"        split_words:"true"`
	OracleAddr       string            `yaml:"oracleAddr"       split_words:"true"`
	MinVotesRequired uint64            `yaml:"minVotesRequired" split_words:"true"`
	GenesisHeight    uint64            `yaml:"genesisHeight"    split_words:"true"`
	Tracing          bool              `yaml:"tracing"`
}

var globalConfig = &Config{
	DataDir:          ".archivenode",
	ApiListenAddress: "0.0.0.0:8080",
	MetricsAddress:   "0.0.0.0:12798",
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.archivenode/archivenode.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(
				homeDir,
				".archivenode",
				"archivenode.yaml",
			)
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/archivenode/archivenode.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/archivenode/archivenode.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	if err := envconfig.Process("archives", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
