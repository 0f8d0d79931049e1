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

// Package funding implements the treasury and milestone escrow: a pooled
// treasury funded by open deposits, projects created only by the governance
// engine, oracle-attested milestone completion, and strictly in-order
// tranche disbursement to institutions.
package funding

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

var (
	ErrNotGovernance = fault.New(
		fault.KindNotAuthorized,
		"only the governance engine may create projects",
	)
	ErrNotOracle = fault.New(
		fault.KindNotAuthorized,
		"only the oracle may verify milestones",
	)
	ErrNotOwner = fault.New(
		fault.KindNotAuthorized,
		"owner only",
	)
	ErrSelfInstitution = fault.New(
		fault.KindInvalidInput,
		"institution cannot be the calling identity",
	)
	ErrEmptyTitle = fault.New(
		fault.KindInvalidInput,
		"title cannot be empty",
	)
	ErrZeroAmount = fault.New(
		fault.KindInvalidInput,
		"amount must be greater than zero",
	)
	ErrIndexOutOfBounds = fault.New(
		fault.KindInvalidInput,
		"milestone index out of bounds",
	)
	ErrMilestoneNotReady = fault.New(
		fault.KindNotReady,
		"milestone is not the next in the schedule",
	)
	ErrMilestoneAlreadyVerified = fault.New(
		fault.KindAlreadyDone,
		"milestone already verified",
	)
	ErrMilestoneAlreadyDisbursed = fault.New(
		fault.KindAlreadyDone,
		"milestone already disbursed",
	)
	ErrProofNotVerified = fault.New(
		fault.KindNotReady,
		"milestone has no verified proof",
	)
	ErrProjectClosed = fault.New(
		fault.KindClosed,
		"project is not active",
	)
	ErrInsufficientTreasury = fault.New(
		fault.KindInsufficientFunds,
		"treasury balance below requested amount",
	)
)

// Config configures the funding ledger. The genesis fields seed the ledger's
// params row on first start and are ignored once it exists.
type Config struct {
	Logger   *slog.Logger
	Database *database.Database
	Runtime  *chain.Runtime
	// LedgerAddr is the ledger's own identity; the treasury's pooled value
	// sits in this account
	LedgerAddr chain.Identity
	// GovernanceAddr is the only identity allowed to create projects
	GovernanceAddr chain.Identity
	// OracleAddr is the only identity allowed to verify milestones
	OracleAddr chain.Identity
	// OwnerAddr administers the oracle, emergency withdrawal and project
	// cancellation
	OwnerAddr chain.Identity
}

// Ledger is the funding component. All public operations are serialized
// through the chain runtime and run in a single metadata transaction.
type Ledger struct {
	logger  *slog.Logger
	db      *database.Database
	runtime *chain.Runtime
	addr    chain.Identity
}

// New creates the funding ledger and writes its genesis params row if one
// does not already exist
func New(cfg Config) (*Ledger, error) {
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
	if cfg.LedgerAddr == "" {
		return nil, chain.ErrEmptyIdentity
	}
	l := &Ledger{
		logger:  logger.With("component", "funding"),
		db:      cfg.Database,
		runtime: cfg.Runtime,
		addr:    cfg.LedgerAddr,
	}
	params, err := cfg.Database.GetLedgerParams(nil)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &models.LedgerParams{
			GovernanceAddr: string(cfg.GovernanceAddr),
			OracleAddr:     string(cfg.OracleAddr),
			OwnerAddr:      string(cfg.OwnerAddr),
			NextProjectIdx: 0,
		}
		if err := cfg.Database.SetLedgerParams(params, nil); err != nil {
			return nil, err
		}
		l.logger.Info(
			"initialized ledger params",
			"governance_addr", params.GovernanceAddr,
			"oracle_addr", params.OracleAddr,
		)
	}
	// The treasury row is created on first read
	if _, err := cfg.Database.GetTreasury(nil); err != nil {
		return nil, err
	}
	return l, nil
}

// Address returns the ledger's own identity
func (l *Ledger) Address() chain.Identity {
	return l.addr
}

// Deposit moves native value from caller into the pooled treasury. Anyone
// may deposit; deposits are not earmarked for any project.
func (l *Ledger) Deposit(caller chain.Identity, amount uint64) error {
	return l.runtime.Step(caller, func(op *chain.Op) error {
		if amount == 0 {
			return ErrZeroAmount
		}
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			if err := op.Transfer(amount, op.Caller(), l.addr); err != nil {
				return err
			}
			treasury, err := l.db.GetTreasury(txn)
			if err != nil {
				return err
			}
			treasury.Balance += amount
			treasury.TotalDeposited += amount
			if err := l.db.SetTreasury(treasury, txn); err != nil {
				return err
			}
			op.Emit(
				event.TreasuryDepositEventType,
				event.TreasuryDepositEvent{
					From:    string(op.Caller()),
					Amount:  amount,
					Balance: treasury.Balance,
				},
			)
			return nil
		})
	})
}

// CreateProject creates a funded project inside an operation already in
// flight. The governance engine calls this during finalization; the
// operation and metadata transaction are shared so approval and creation
// commit or fail together. Only the configured governance identity is
// accepted as caller, and the schedule is revalidated on this side of the
// trust boundary.
func (l *Ledger) CreateProject(
	op *chain.Op,
	txn *database.Txn,
	caller chain.Identity,
	institution chain.Identity,
	totalBudget uint64,
	milestones []uint64,
	title string,
	description string,
) (uint64, error) {
	params, err := l.db.GetLedgerParams(txn)
	if err != nil {
		return 0, err
	}
	if params == nil || string(caller) != params.GovernanceAddr {
		return 0, ErrNotGovernance
	}
	if institution == "" {
		return 0, chain.ErrEmptyIdentity
	}
	if institution == caller {
		return 0, ErrSelfInstitution
	}
	if title == "" {
		return 0, ErrEmptyTitle
	}
	if err := models.ValidateSchedule(totalBudget, milestones); err != nil {
		return 0, err
	}
	idx := params.NextProjectIdx
	project := &models.Project{
		Idx:         idx,
		Institution: string(institution),
		TotalBudget: totalBudget,
		Approved:    true,
		Title:       title,
		Description: description,
		Status:      models.ProjectStatusActive,
		AddedHeight: op.Height(),
	}
	for i, amount := range milestones {
		project.Milestones = append(
			project.Milestones,
			// #nosec G115
			models.ProjectMilestone{Index: uint32(i), Amount: amount},
		)
	}
	if err := l.db.SetProject(project, txn); err != nil {
		return 0, err
	}
	params.NextProjectIdx++
	if err := l.db.SetLedgerParams(params, txn); err != nil {
		return 0, err
	}
	op.Emit(
		event.ProjectCreatedEventType,
		event.ProjectCreatedEvent{
			Idx:         idx,
			Institution: string(institution),
			TotalBudget: totalBudget,
			Milestones:  milestones,
		},
	)
	l.logger.Info(
		"project created",
		"idx", idx,
		"institution", string(institution),
		"total_budget", totalBudget,
	)
	return idx, nil
}

// VerifyMilestone records the oracle's attestation that the next milestone
// of an active project is complete. Verification is strictly in order and
// moves no funds; an unapproved or inactive project is not visible to the
// oracle.
func (l *Ledger) VerifyMilestone(
	caller chain.Identity,
	projectIdx uint64,
	index uint32,
) error {
	return l.runtime.Step(caller, func(op *chain.Op) error {
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			params, err := l.db.GetLedgerParams(txn)
			if err != nil {
				return err
			}
			if params == nil || string(op.Caller()) != params.OracleAddr {
				return ErrNotOracle
			}
			project, err := l.db.GetProject(projectIdx, txn)
			if err != nil {
				return err
			}
			if !project.Approved ||
				project.Status != models.ProjectStatusActive {
				return models.ErrProjectNotFound
			}
			if int(index) >= len(project.Milestones) {
				return ErrIndexOutOfBounds
			}
			if index != project.CurrentMilestone {
				return ErrMilestoneNotReady
			}
			existing, err := l.db.GetMilestoneProof(projectIdx, index, txn)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrMilestoneAlreadyVerified
			}
			if err := l.db.AddMilestoneProof(&models.MilestoneProof{
				ProjectIdx:     projectIdx,
				Index:          index,
				Verified:       true,
				Verifier:       string(op.Caller()),
				VerifiedHeight: op.Height(),
			}, txn); err != nil {
				return err
			}
			op.Emit(
				event.MilestoneVerifiedEventType,
				event.MilestoneVerifiedEvent{
					ProjectIdx: projectIdx,
					Index:      index,
					Verifier:   string(op.Caller()),
					Height:     op.Height(),
				},
			)
			return nil
		})
	})
}

// DisburseMilestone releases a verified milestone's tranche from the
// treasury to the project's institution and advances the schedule cursor.
// Anyone may trigger it once the proof exists. The final milestone's
// disbursement completes the project. Returns the amount moved.
func (l *Ledger) DisburseMilestone(
	caller chain.Identity,
	projectIdx uint64,
	index uint32,
) (uint64, error) {
	var amount uint64
	err := l.runtime.Step(caller, func(op *chain.Op) error {
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			project, err := l.db.GetProject(projectIdx, txn)
			if err != nil {
				return err
			}
			if project.Status != models.ProjectStatusActive {
				return ErrProjectClosed
			}
			if int(index) >= len(project.Milestones) {
				return ErrIndexOutOfBounds
			}
			if index < project.CurrentMilestone {
				return ErrMilestoneAlreadyDisbursed
			}
			if index > project.CurrentMilestone {
				return ErrMilestoneNotReady
			}
			proof, err := l.db.GetMilestoneProof(projectIdx, index, txn)
			if err != nil {
				return err
			}
			if proof == nil || !proof.Verified {
				return ErrProofNotVerified
			}
			amount = project.Milestones[index].Amount
			treasury, err := l.db.GetTreasury(txn)
			if err != nil {
				return err
			}
			if treasury.Balance < amount {
				return ErrInsufficientTreasury
			}
			treasury.Balance -= amount
			treasury.TotalWithdrawn += amount
			project.Disbursed += amount
			project.CurrentMilestone++
			completed := int(project.CurrentMilestone) == len(project.Milestones)
			if completed {
				project.Status = models.ProjectStatusCompleted
			}
			if err := l.db.SetTreasury(treasury, txn); err != nil {
				return err
			}
			if err := l.db.SetProject(project, txn); err != nil {
				return err
			}
			if err := op.Transfer(
				amount,
				l.addr,
				chain.Identity(project.Institution),
			); err != nil {
				return err
			}
			op.Emit(
				event.MilestoneDisbursedEventType,
				event.MilestoneDisbursedEvent{
					ProjectIdx: projectIdx,
					Index:      index,
					Amount:     amount,
					To:         project.Institution,
					Completed:  completed,
				},
			)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	l.logger.Info(
		"milestone disbursed",
		"project_idx", projectIdx,
		"index", index,
		"amount", amount,
	)
	return amount, nil
}

// EmergencyWithdraw moves treasury funds to an arbitrary recipient outside
// the milestone protocol. Owner only.
func (l *Ledger) EmergencyWithdraw(
	caller chain.Identity,
	amount uint64,
	recipient chain.Identity,
) error {
	return l.runtime.Step(caller, func(op *chain.Op) error {
		if amount == 0 {
			return ErrZeroAmount
		}
		if recipient == "" {
			return chain.ErrEmptyIdentity
		}
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			params, err := l.db.GetLedgerParams(txn)
			if err != nil {
				return err
			}
			if params == nil || string(op.Caller()) != params.OwnerAddr {
				return ErrNotOwner
			}
			treasury, err := l.db.GetTreasury(txn)
			if err != nil {
				return err
			}
			if treasury.Balance < amount {
				return ErrInsufficientTreasury
			}
			treasury.Balance -= amount
			treasury.TotalWithdrawn += amount
			if err := l.db.SetTreasury(treasury, txn); err != nil {
				return err
			}
			if err := op.Transfer(amount, l.addr, recipient); err != nil {
				return err
			}
			op.Emit(
				event.TreasuryWithdrawalEventType,
				event.TreasuryWithdrawalEvent{
					To:      string(recipient),
					Amount:  amount,
					Balance: treasury.Balance,
				},
			)
			return nil
		})
	})
}

// CancelProject halts an active project. Owner only. Undisbursed budget is
// not refunded anywhere; it simply stays pooled in the treasury for future
// projects. Cancellation also clears the approval flag so the project drops
// out of the oracle's view.
func (l *Ledger) CancelProject(
	caller chain.Identity,
	projectIdx uint64,
) error {
	return l.runtime.Step(caller, func(op *chain.Op) error {
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			params, err := l.db.GetLedgerParams(txn)
			if err != nil {
				return err
			}
			if params == nil || string(op.Caller()) != params.OwnerAddr {
				return ErrNotOwner
			}
			project, err := l.db.GetProject(projectIdx, txn)
			if err != nil {
				return err
			}
			if project.Status != models.ProjectStatusActive {
				return ErrProjectClosed
			}
			project.Status = models.ProjectStatusCancelled
			project.Approved = false
			if err := l.db.SetProject(project, txn); err != nil {
				return err
			}
			op.Emit(
				event.ProjectCancelledEventType,
				event.ProjectCancelledEvent{
					Idx:         projectIdx,
					Undisbursed: project.Remaining(),
				},
			)
			return nil
		})
	})
}

// SetOracle updates the identity trusted to verify milestones. Owner only.
func (l *Ledger) SetOracle(
	caller chain.Identity,
	oracle chain.Identity,
) error {
	return l.runtime.Step(caller, func(op *chain.Op) error {
		if oracle == "" {
			return chain.ErrEmptyIdentity
		}
		txn := l.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			params, err := l.db.GetLedgerParams(txn)
			if err != nil {
				return err
			}
			if params == nil || string(op.Caller()) != params.OwnerAddr {
				return ErrNotOwner
			}
			params.OracleAddr = string(oracle)
			return l.db.SetLedgerParams(params, txn)
		})
	})
}

// TreasuryBalance returns the pooled treasury balance
func (l *Ledger) TreasuryBalance() (uint64, error) {
	treasury, err := l.db.GetTreasury(nil)
	if err != nil {
		return 0, err
	}
	return treasury.Balance, nil
}

// RemainingBudget returns the undisbursed portion of a project's budget
func (l *Ledger) RemainingBudget(projectIdx uint64) (uint64, error) {
	project, err := l.db.GetProject(projectIdx, nil)
	if err != nil {
		return 0, err
	}
	return project.Remaining(), nil
}

// GetProject returns a project by index
func (l *Ledger) GetProject(idx uint64) (*models.Project, error) {
	return l.db.GetProject(idx, nil)
}

// GetProjects returns all projects ordered by index
func (l *Ledger) GetProjects() ([]*models.Project, error) {
	return l.db.GetProjects(nil)
}
