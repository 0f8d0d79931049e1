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

package api

import "encoding/json"

// ErrorResponse is the error body returned by every failing endpoint
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// RootResponse is returned by GET /
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// StatusResponse is returned by GET /api/v1/status
type StatusResponse struct {
	Height          uint64 `json:"height"`
	TreasuryBalance uint64 `json:"treasury_balance"`
	Proposals       int    `json:"proposals"`
	Projects        int    `json:"projects"`
}

// ProposalResponse describes a proposal and its tallies
type ProposalResponse struct {
	Idx          uint64   `json:"idx"`
	Proposer     string   `json:"proposer"`
	Institution  string   `json:"institution"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TotalBudget  uint64   `json:"total_budget"`
	Milestones   []uint64 `json:"milestones"`
	Status       string   `json:"status"`
	VotesFor     uint64   `json:"votes_for"`
	VotesAgainst uint64   `json:"votes_against"`
	VotingEnd    uint64   `json:"voting_end"`
	AddedHeight  uint64   `json:"added_height"`
}

// VoteResponse describes a single recorded vote
type VoteResponse struct {
	Voter       string `json:"voter"`
	Support     bool   `json:"support"`
	AddedHeight uint64 `json:"added_height"`
}

// ProjectResponse describes a funded project and its escrow progress
type ProjectResponse struct {
	Idx              uint64   `json:"idx"`
	Institution      string   `json:"institution"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	TotalBudget      uint64   `json:"total_budget"`
	Disbursed        uint64   `json:"disbursed"`
	Remaining        uint64   `json:"remaining"`
	CurrentMilestone uint32   `json:"current_milestone"`
	Milestones       []uint64 `json:"milestones"`
	Approved         bool     `json:"approved"`
	Status           string   `json:"status"`
	AddedHeight      uint64   `json:"added_height"`
}

// TreasuryResponse describes the pooled treasury
type TreasuryResponse struct {
	Balance        uint64 `json:"balance"`
	TotalDeposited uint64 `json:"total_deposited"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
}

// ParamsResponse describes the current component parameters
type ParamsResponse struct {
	MinVotesRequired uint64 `json:"min_votes_required"`
	FundTarget       string `json:"fund_target"`
	GovernanceAddr   string `json:"governance_addr"`
	OracleAddr       string `json:"oracle_addr"`
	NextProposalIdx  uint64 `json:"next_proposal_idx"`
	NextProjectIdx   uint64 `json:"next_project_idx"`
}

// EventResponse is one archived domain event
type EventResponse struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Seq       uint64          `json:"seq"`
	Height    uint64          `json:"height"`
	Timestamp int64           `json:"timestamp"`
}
