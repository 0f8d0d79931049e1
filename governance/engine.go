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

// Package governance implements the proposal lifecycle: submission with a
// fixed milestone schedule, one vote per identity during the voting window,
// permissionless finalization against the approval threshold, and handoff of
// approved proposals to the funding ledger as new projects.
package governance

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/event"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
)

// DefaultMinVotesRequired is the genesis approval threshold used when no
// explicit threshold is configured
const DefaultMinVotesRequired = 3

var (
	ErrInvalidVotingDuration = fault.New(
		fault.KindInvalidInput,
		"voting duration must be greater than zero",
	)
	ErrEmptyInstitution = fault.New(
		fault.KindInvalidInput,
		"institution identity cannot be empty",
	)
	ErrInvalidMinVotes = fault.New(
		fault.KindInvalidInput,
		"minimum votes required must be greater than zero",
	)
	ErrVotingClosed = fault.New(
		fault.KindClosed,
		"proposal is not open for voting",
	)
	ErrAlreadyVoted = fault.New(
		fault.KindAlreadyDone,
		"identity has already voted on this proposal",
	)
	ErrVotingNotEnded = fault.New(
		fault.KindNotReady,
		"voting period has not ended",
	)
	ErrNotProposer = fault.New(
		fault.KindNotAuthorized,
		"only the proposer may cancel a proposal",
	)
	ErrNotOwner = fault.New(
		fault.KindNotAuthorized,
		"owner only",
	)
	ErrNoFundTarget = fault.New(
		fault.KindNotReady,
		"no fund-disbursement target configured",
	)
)

// ProjectCreator creates a funded project inside an operation already in
// flight. The funding ledger implements this; the engine invokes it during
// finalization so that proposal approval and project creation commit or fail
// as one unit.
type ProjectCreator interface {
	Address() chain.Identity
	CreateProject(
		op *chain.Op,
		txn *database.Txn,
		caller chain.Identity,
		institution chain.Identity,
		totalBudget uint64,
		milestones []uint64,
		title string,
		description string,
	) (uint64, error)
}

// Config configures the governance engine. The genesis fields seed the
// engine's params row on first start and are ignored once it exists.
type Config struct {
	Logger   *slog.Logger
	Database *database.Database
	Runtime  *chain.Runtime
	Projects ProjectCreator
	// EngineAddr is the engine's own ledger identity, used as the caller
	// for project-creation calls
	EngineAddr chain.Identity
	// OwnerAddr administers the threshold and the fund target
	OwnerAddr chain.Identity
	// MinVotesRequired is the genesis approval threshold. Zero means
	// DefaultMinVotesRequired.
	MinVotesRequired uint64
}

// Engine is the governance component. All public operations are serialized
// through the chain runtime and run in a single metadata transaction.
type Engine struct {
	logger   *slog.Logger
	db       *database.Database
	runtime  *chain.Runtime
	projects ProjectCreator
	addr     chain.Identity
}

// New creates the governance engine and writes its genesis params row if one
// does not already exist
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("no database provided")
	}
	if cfg.Runtime == nil {
		return nil, fmt.Errorf("no chain runtime provided")
	}
	if cfg.EngineAddr == "" {
		return nil, chain.ErrEmptyIdentity
	}
	e := &Engine{
		logger:   logger.With("component", "governance"),
		db:       cfg.Database,
		runtime:  cfg.Runtime,
		projects: cfg.Projects,
		addr:     cfg.EngineAddr,
	}
	params, err := cfg.Database.GetGovernanceParams(nil)
	if err != nil {
		return nil, err
	}
	if params == nil {
		minVotes := cfg.MinVotesRequired
		if minVotes == 0 {
			minVotes = DefaultMinVotesRequired
		}
		var fundTarget string
		if cfg.Projects != nil {
			fundTarget = string(cfg.Projects.Address())
		}
		params = &models.GovernanceParams{
			MinVotesRequired: minVotes,
			FundTarget:       fundTarget,
			OwnerAddr:        string(cfg.OwnerAddr),
			NextProposalIdx:  0,
		}
		if err := cfg.Database.SetGovernanceParams(params, nil); err != nil {
			return nil, err
		}
		e.logger.Info(
			"initialized governance params",
			"min_votes_required", minVotes,
			"fund_target", fundTarget,
		)
	}
	return e, nil
}

// Address returns the engine's own ledger identity
func (e *Engine) Address() chain.Identity {
	return e.addr
}

// SubmitParams describes a new proposal
type SubmitParams struct {
	// Institution receives milestone disbursements if the proposal is
	// approved. It cannot be the submitting identity.
	Institution chain.Identity
	// TotalBudget is the requested budget in the smallest value unit
	TotalBudget uint64
	// Milestones is the ordered tranche schedule. It must be non-empty,
	// at most ten entries, and sum to TotalBudget.
	Milestones []uint64
	// Title and Description label the proposal
	Title       string
	Description string
	// VotingDuration is the number of heights the voting window stays open
	VotingDuration uint64
}

// Submit creates a new proposal in the voting state and returns its index.
// The milestone schedule is validated up front and fixed for the proposal's
// lifetime; a rejected submission consumes no proposal index.
func (e *Engine) Submit(
	caller chain.Identity,
	params SubmitParams,
) (uint64, error) {
	var idx uint64
	err := e.runtime.Step(caller, func(op *chain.Op) error {
		if params.Institution == "" {
			return ErrEmptyInstitution
		}
		if params.VotingDuration == 0 {
			return ErrInvalidVotingDuration
		}
		if err := models.ValidateDetails(params.Title, params.Description); err != nil {
			return err
		}
		if err := models.ValidateSchedule(params.TotalBudget, params.Milestones); err != nil {
			return err
		}
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			govParams, err := e.db.GetGovernanceParams(txn)
			if err != nil {
				return err
			}
			idx = govParams.NextProposalIdx
			proposal := &models.Proposal{
				Idx:         idx,
				Proposer:    string(op.Caller()),
				Institution: string(params.Institution),
				TotalBudget: params.TotalBudget,
				Title:       params.Title,
				Description: params.Description,
				Status:      models.ProposalStatusVoting,
				VotingEnd:   op.Height() + params.VotingDuration,
				AddedHeight: op.Height(),
			}
			for i, amount := range params.Milestones {
				proposal.Milestones = append(
					proposal.Milestones,
					// #nosec G115
					models.ProposalMilestone{Index: uint32(i), Amount: amount},
				)
			}
			if err := e.db.SetProposal(proposal, txn); err != nil {
				return err
			}
			govParams.NextProposalIdx++
			if err := e.db.SetGovernanceParams(govParams, txn); err != nil {
				return err
			}
			op.Emit(
				event.ProposalSubmittedEventType,
				event.ProposalSubmittedEvent{
					Idx:         idx,
					Proposer:    string(op.Caller()),
					Institution: string(params.Institution),
					TotalBudget: params.TotalBudget,
					VotingEnd:   proposal.VotingEnd,
					Height:      op.Height(),
				},
			)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	e.logger.Info(
		"proposal submitted",
		"idx", idx,
		"proposer", string(caller),
		"total_budget", params.TotalBudget,
	)
	return idx, nil
}

// Vote records caller's vote on an open proposal. Each identity votes at
// most once per proposal and votes are never changed or withdrawn.
func (e *Engine) Vote(
	caller chain.Identity,
	proposalIdx uint64,
	support bool,
) error {
	return e.runtime.Step(caller, func(op *chain.Op) error {
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			proposal, err := e.db.GetProposal(proposalIdx, txn)
			if err != nil {
				return err
			}
			if proposal.Status != models.ProposalStatusVoting {
				return ErrVotingClosed
			}
			if op.Height() > proposal.VotingEnd {
				return ErrVotingClosed
			}
			existing, err := e.db.GetVote(proposalIdx, string(op.Caller()), txn)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrAlreadyVoted
			}
			if err := e.db.AddVote(&models.Vote{
				ProposalIdx: proposalIdx,
				Voter:       string(op.Caller()),
				Support:     support,
				AddedHeight: op.Height(),
			}, txn); err != nil {
				return err
			}
			if support {
				proposal.VotesFor++
			} else {
				proposal.VotesAgainst++
			}
			if err := e.db.SetProposal(proposal, txn); err != nil {
				return err
			}
			op.Emit(
				event.VoteCastEventType,
				event.VoteCastEvent{
					ProposalIdx:  proposalIdx,
					Voter:        string(op.Caller()),
					Support:      support,
					VotesFor:     proposal.VotesFor,
					VotesAgainst: proposal.VotesAgainst,
				},
			)
			return nil
		})
	})
}

// Finalize closes a proposal whose voting window has ended. Anyone may call
// it. A proposal with enough supporting votes is approved and a funded
// project is created from its schedule in the same operation; otherwise it
// is rejected. Opposing votes only ever inform; they never block approval.
// Any failure during project creation rolls the whole operation back, so a
// proposal is never approved without its project.
func (e *Engine) Finalize(
	caller chain.Identity,
	proposalIdx uint64,
) error {
	var approved bool
	var projectIdx uint64
	err := e.runtime.Step(caller, func(op *chain.Op) error {
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			proposal, err := e.db.GetProposal(proposalIdx, txn)
			if err != nil {
				return err
			}
			if proposal.Status != models.ProposalStatusVoting {
				return ErrVotingClosed
			}
			if op.Height() <= proposal.VotingEnd {
				return ErrVotingNotEnded
			}
			govParams, err := e.db.GetGovernanceParams(txn)
			if err != nil {
				return err
			}
			if proposal.VotesFor >= govParams.MinVotesRequired {
				if e.projects == nil ||
					string(e.projects.Address()) != govParams.FundTarget {
					return ErrNoFundTarget
				}
				projectIdx, err = e.projects.CreateProject(
					op,
					txn,
					e.addr,
					chain.Identity(proposal.Institution),
					proposal.TotalBudget,
					proposal.MilestoneAmounts(),
					proposal.Title,
					proposal.Description,
				)
				if err != nil {
					return fmt.Errorf("failed to create project: %w", err)
				}
				approved = true
				proposal.Status = models.ProposalStatusApproved
				if err := e.db.SetProposal(proposal, txn); err != nil {
					return err
				}
				op.Emit(
					event.ProposalApprovedEventType,
					event.ProposalApprovedEvent{
						Idx:        proposalIdx,
						ProjectIdx: projectIdx,
						VotesFor:   proposal.VotesFor,
					},
				)
				return nil
			}
			proposal.Status = models.ProposalStatusRejected
			if err := e.db.SetProposal(proposal, txn); err != nil {
				return err
			}
			op.Emit(
				event.ProposalRejectedEventType,
				event.ProposalRejectedEvent{
					Idx:          proposalIdx,
					VotesFor:     proposal.VotesFor,
					VotesAgainst: proposal.VotesAgainst,
				},
			)
			return nil
		})
	})
	if err != nil {
		return err
	}
	if approved {
		e.logger.Info(
			"proposal approved",
			"idx", proposalIdx,
			"project_idx", projectIdx,
		)
	} else {
		e.logger.Info("proposal rejected", "idx", proposalIdx)
	}
	return nil
}

// Cancel withdraws a proposal that is still in its voting state. Only the
// original proposer may cancel, and a finalized proposal stays finalized.
func (e *Engine) Cancel(
	caller chain.Identity,
	proposalIdx uint64,
) error {
	return e.runtime.Step(caller, func(op *chain.Op) error {
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			proposal, err := e.db.GetProposal(proposalIdx, txn)
			if err != nil {
				return err
			}
			if proposal.Proposer != string(op.Caller()) {
				return ErrNotProposer
			}
			if proposal.Status != models.ProposalStatusVoting {
				return ErrVotingClosed
			}
			proposal.Status = models.ProposalStatusCancelled
			if err := e.db.SetProposal(proposal, txn); err != nil {
				return err
			}
			op.Emit(
				event.ProposalCancelledEventType,
				event.ProposalCancelledEvent{Idx: proposalIdx},
			)
			return nil
		})
	})
}

// SetMinVotesRequired updates the approval threshold. Owner only; the
// threshold must stay above zero. Proposals finalized afterwards use the new
// threshold regardless of when they were submitted.
func (e *Engine) SetMinVotesRequired(
	caller chain.Identity,
	minVotes uint64,
) error {
	return e.runtime.Step(caller, func(op *chain.Op) error {
		if minVotes == 0 {
			return ErrInvalidMinVotes
		}
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			govParams, err := e.db.GetGovernanceParams(txn)
			if err != nil {
				return err
			}
			if govParams.OwnerAddr != string(op.Caller()) {
				return ErrNotOwner
			}
			govParams.MinVotesRequired = minVotes
			return e.db.SetGovernanceParams(govParams, txn)
		})
	})
}

// SetFundTarget updates the identity allowed to receive project-creation
// calls. Owner only.
func (e *Engine) SetFundTarget(
	caller chain.Identity,
	target chain.Identity,
) error {
	return e.runtime.Step(caller, func(op *chain.Op) error {
		if target == "" {
			return chain.ErrEmptyIdentity
		}
		txn := e.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			govParams, err := e.db.GetGovernanceParams(txn)
			if err != nil {
				return err
			}
			if govParams.OwnerAddr != string(op.Caller()) {
				return ErrNotOwner
			}
			govParams.FundTarget = string(target)
			return e.db.SetGovernanceParams(govParams, txn)
		})
	})
}

// MinVotesRequired returns the current approval threshold
func (e *Engine) MinVotesRequired() (uint64, error) {
	govParams, err := e.db.GetGovernanceParams(nil)
	if err != nil {
		return 0, err
	}
	if govParams == nil {
		return 0, fmt.Errorf("governance params not initialized")
	}
	return govParams.MinVotesRequired, nil
}

// GetProposal returns a proposal by index
func (e *Engine) GetProposal(idx uint64) (*models.Proposal, error) {
	return e.db.GetProposal(idx, nil)
}

// GetProposals returns all proposals ordered by index
func (e *Engine) GetProposals() ([]*models.Proposal, error) {
	return e.db.GetProposals(nil)
}

// GetVotes returns the recorded votes for a proposal in cast order
func (e *Engine) GetVotes(proposalIdx uint64) ([]*models.Vote, error) {
	return e.db.GetVotes(proposalIdx, nil)
}
