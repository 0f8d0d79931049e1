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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	configYaml := `
dataDir: /var/lib/archivenode
apiListenAddress: 127.0.0.1:9000
minVotesRequired: 5
genesisHeight: 100
genesisAccounts:
  addr_seed_depositor: 50000
`
	configPath := filepath.Join(t.TempDir(), "archivenode.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYaml), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/archivenode", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9000", cfg.ApiListenAddress)
	assert.Equal(t, uint64(5), cfg.MinVotesRequired)
	assert.Equal(t, uint64(100), cfg.GenesisHeight)
	assert.Equal(t, uint64(50000), cfg.GenesisAccounts["addr_seed_depositor"])
	// Untouched values keep their defaults
	assert.Equal(t, "0.0.0.0:12798", cfg.MetricsAddress)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ARCHIVES_ORACLE_ADDR", "addr_env_oracle")
	t.Setenv("ARCHIVES_API_LISTEN_ADDRESS", "127.0.0.1:9999")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "addr_env_oracle", cfg.OracleAddr)
	assert.Equal(t, "127.0.0.1:9999", cfg.ApiListenAddress)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/test"}
	ctx := WithContext(t.Context(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
	assert.Nil(t, FromContext(t.Context()))
}
