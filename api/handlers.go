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

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
)

const apiVersion = "0.1.0"

// defaultEventPageSize bounds GET /api/v1/events responses
const defaultEventPageSize = 100

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response
func writeError(
	w http.ResponseWriter,
	status int,
	errStr string,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

// writeFailure maps a storage error onto an HTTP error response
func (a *Api) writeFailure(w http.ResponseWriter, err error, message string) {
	if fault.Is(err, fault.KindNotFound) {
		writeError(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	a.logger.Error(message, "error", err)
	writeError(
		w,
		http.StatusInternalServerError,
		"Internal Server Error",
		message,
	)
}

// pathIdx parses the {idx} path parameter
func pathIdx(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("idx"), 10, 64)
}

func proposalResponse(proposal *models.Proposal) ProposalResponse {
	return ProposalResponse{
		Idx:          proposal.Idx,
		Proposer:     proposal.Proposer,
		Institution:  proposal.Institution,
		Title:        proposal.Title,
		Description:  proposal.Description,
		TotalBudget:  proposal.TotalBudget,
		Milestones:   proposal.MilestoneAmounts(),
		Status:       proposal.Status.String(),
		VotesFor:     proposal.VotesFor,
		VotesAgainst: proposal.VotesAgainst,
		VotingEnd:    proposal.VotingEnd,
		AddedHeight:  proposal.AddedHeight,
	}
}

func projectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		Idx:              project.Idx,
		Institution:      project.Institution,
		Title:            project.Title,
		Description:      project.Description,
		TotalBudget:      project.TotalBudget,
		Disbursed:        project.Disbursed,
		Remaining:        project.Remaining(),
		CurrentMilestone: project.CurrentMilestone,
		Milestones:       project.MilestoneAmounts(),
		Approved:         project.Approved,
		Status:           project.Status.String(),
		AddedHeight:      project.AddedHeight,
	}
}

// handleRoot handles GET / and returns API metadata
func (a *Api) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "archives-api",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health
func (a *Api) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleStatus handles GET /api/v1/status
func (a *Api) handleStatus(w http.ResponseWriter, _ *http.Request) {
	treasury, err := a.db.GetTreasury(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve treasury")
		return
	}
	proposals, err := a.db.GetProposals(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve proposals")
		return
	}
	projects, err := a.db.GetProjects(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve projects")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Height:          a.runtime.Height(),
		TreasuryBalance: treasury.Balance,
		Proposals:       len(proposals),
		Projects:        len(projects),
	})
}

// handleProposals handles GET /api/v1/proposals
func (a *Api) handleProposals(w http.ResponseWriter, _ *http.Request) {
	proposals, err := a.db.GetProposals(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve proposals")
		return
	}
	resp := []ProposalResponse{}
	for _, proposal := range proposals {
		resp = append(resp, proposalResponse(proposal))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProposal handles GET /api/v1/proposals/{idx}
func (a *Api) handleProposal(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIdx(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid proposal index",
		)
		return
	}
	proposal, err := a.db.GetProposal(idx, nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve proposal")
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse(proposal))
}

// handleProposalVotes handles GET /api/v1/proposals/{idx}/votes
func (a *Api) handleProposalVotes(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIdx(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid proposal index",
		)
		return
	}
	// Distinguish a missing proposal from one with no votes
	if _, err := a.db.GetProposal(idx, nil); err != nil {
		a.writeFailure(w, err, "failed to retrieve proposal")
		return
	}
	votes, err := a.db.GetVotes(idx, nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve votes")
		return
	}
	resp := []VoteResponse{}
	for _, vote := range votes {
		resp = append(resp, VoteResponse{
			Voter:       vote.Voter,
			Support:     vote.Support,
			AddedHeight: vote.AddedHeight,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProjects handles GET /api/v1/projects
func (a *Api) handleProjects(w http.ResponseWriter, _ *http.Request) {
	projects, err := a.db.GetProjects(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve projects")
		return
	}
	resp := []ProjectResponse{}
	for _, project := range projects {
		resp = append(resp, projectResponse(project))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProject handles GET /api/v1/projects/{idx}
func (a *Api) handleProject(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIdx(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid project index",
		)
		return
	}
	project, err := a.db.GetProject(idx, nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve project")
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(project))
}

// handleTreasury handles GET /api/v1/treasury
func (a *Api) handleTreasury(w http.ResponseWriter, _ *http.Request) {
	treasury, err := a.db.GetTreasury(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve treasury")
		return
	}
	writeJSON(w, http.StatusOK, TreasuryResponse{
		Balance:        treasury.Balance,
		TotalDeposited: treasury.TotalDeposited,
		TotalWithdrawn: treasury.TotalWithdrawn,
	})
}

// handleParams handles GET /api/v1/params
func (a *Api) handleParams(w http.ResponseWriter, _ *http.Request) {
	govParams, err := a.db.GetGovernanceParams(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve governance params")
		return
	}
	ledgerParams, err := a.db.GetLedgerParams(nil)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve ledger params")
		return
	}
	resp := ParamsResponse{}
	if govParams != nil {
		resp.MinVotesRequired = govParams.MinVotesRequired
		resp.FundTarget = govParams.FundTarget
		resp.NextProposalIdx = govParams.NextProposalIdx
	}
	if ledgerParams != nil {
		resp.GovernanceAddr = ledgerParams.GovernanceAddr
		resp.OracleAddr = ledgerParams.OracleAddr
		resp.NextProjectIdx = ledgerParams.NextProjectIdx
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEvents handles GET /api/v1/events with optional from and limit
// query parameters
func (a *Api) handleEvents(w http.ResponseWriter, r *http.Request) {
	var fromSeq uint64
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(
				w,
				http.StatusBadRequest,
				"Bad Request",
				"invalid from parameter",
			)
			return
		}
		fromSeq = parsed
	}
	limit := defaultEventPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > defaultEventPageSize {
			writeError(
				w,
				http.StatusBadRequest,
				"Bad Request",
				"invalid limit parameter",
			)
			return
		}
		limit = parsed
	}
	events, err := a.db.GetEvents(fromSeq, limit)
	if err != nil {
		a.writeFailure(w, err, "failed to retrieve events")
		return
	}
	resp := []EventResponse{}
	for _, evt := range events {
		resp = append(resp, EventResponse{
			Type:      evt.Type,
			Data:      evt.Data,
			Seq:       evt.Seq,
			Height:    evt.Height,
			Timestamp: evt.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
