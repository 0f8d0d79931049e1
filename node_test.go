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
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/governance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDepositor = chain.Identity("addr_test_depositor")

func startTestNode(t *testing.T) *Node {
	t.Helper()
	node, err := New(NewConfig(
		WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		WithDataDir(t.TempDir()),
		// No listeners in tests
		WithApiListenAddress(""),
		WithMinVotesRequired(2),
		WithGenesisAccounts(map[chain.Identity]uint64{
			testDepositor: 10000,
		}),
		WithGenesisHeight(100),
	))
	require.NoError(t, err)

	runErr := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		runErr <- node.Run(ctx)
	}()
	require.Eventually(t, func() bool {
		return node.Governance() != nil
	}, 5*time.Second, 10*time.Millisecond, "node failed to start")
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-runErr:
			require.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Error("node did not shut down in time")
		}
	})
	return node
}

func TestNodePipeline(t *testing.T) {
	node := startTestNode(t)

	// Fund the treasury
	require.NoError(t, node.Funding().Deposit(testDepositor, 1000))

	// Proposal through vote to approval
	idx, err := node.Governance().Submit(
		"addr_test_proposer",
		governance.SubmitParams{
			Institution:    "addr_test_institution",
			TotalBudget:    1000,
			Milestones:     []uint64{400, 600},
			Title:          "Digitize parish records",
			Description:    "Scan and index 12,000 pages of parish records",
			VotingDuration: 5,
		},
	)
	require.NoError(t, err)
	require.NoError(t, node.Governance().Vote("addr_test_voter1", idx, true))
	require.NoError(t, node.Governance().Vote("addr_test_voter2", idx, true))
	for range 10 {
		require.NoError(
			t,
			node.Runtime().Step("addr_test_clock", func(op *chain.Op) error {
				return nil
			}),
		)
	}
	require.NoError(t, node.Governance().Finalize("addr_test_anyone", idx))

	proposal, err := node.Governance().GetProposal(idx)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, proposal.Status)

	// Milestone escrow through to completion
	require.NoError(
		t,
		node.Funding().VerifyMilestone(DefaultOracleAddr, 0, 0),
	)
	amount, err := node.Funding().DisburseMilestone("addr_test_anyone", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), amount)
	require.NoError(
		t,
		node.Funding().VerifyMilestone(DefaultOracleAddr, 0, 1),
	)
	amount, err = node.Funding().DisburseMilestone("addr_test_anyone", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), amount)

	project, err := node.Funding().GetProject(0)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Equal(
		t,
		uint64(1000),
		node.Runtime().Balance("addr_test_institution"),
	)

	// Committed operations land in the event archive
	require.Eventually(t, func() bool {
		events, err := node.Database().GetEvents(0, 0)
		if err != nil {
			return false
		}
		// submit + 2 votes + approve + create + deposit +
		// 2 verifies + 2 disbursements
		return len(events) >= 10
	}, 5*time.Second, 10*time.Millisecond, "events were not archived")
}

func TestNodeConfigValidation(t *testing.T) {
	_, err := New(NewConfig(
		WithGovernanceAddr("addr_test_same"),
		WithFundingAddr("addr_test_same"),
	))
	require.Error(t, err)

	_, err = New(NewConfig(WithOwnerAddr("")))
	require.Error(t, err)
}
