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

package event

// ProjectCreatedEventType is the event type for newly funded projects
const ProjectCreatedEventType = EventType("project.created")

// ProjectCreatedEvent is emitted when an approved proposal becomes a funded
// project with an identical milestone schedule
type ProjectCreatedEvent struct {
	// Idx is the project index
	Idx uint64
	// Institution is the identity receiving milestone disbursements
	Institution string
	// TotalBudget is the project budget in the smallest value unit
	TotalBudget uint64
	// Milestones is the ordered milestone amount schedule
	Milestones []uint64
}

// MilestoneVerifiedEventType is the event type for oracle attestations
const MilestoneVerifiedEventType = EventType("milestone.verified")

// MilestoneVerifiedEvent is emitted when the oracle attests completion of
// the next milestone in a project's schedule. No funds move on this event.
type MilestoneVerifiedEvent struct {
	// ProjectIdx is the project index
	ProjectIdx uint64
	// Index is the verified milestone index
	Index uint32
	// Verifier is the oracle identity that attested
	Verifier string
	// Height is the height of the attestation
	Height uint64
}

// MilestoneDisbursedEventType is the event type for milestone payouts
const MilestoneDisbursedEventType = EventType("milestone.disbursed")

// MilestoneDisbursedEvent is emitted when a verified milestone's tranche is
// released from the treasury to the institution
type MilestoneDisbursedEvent struct {
	// ProjectIdx is the project index
	ProjectIdx uint64
	// Index is the disbursed milestone index
	Index uint32
	// Amount is the tranche amount moved
	Amount uint64
	// To is the receiving institution identity
	To string
	// Completed is true when this was the final milestone
	Completed bool
}

// ProjectCancelledEventType is the event type for owner-cancelled projects
const ProjectCancelledEventType = EventType("project.cancelled")

// ProjectCancelledEvent is emitted when the owner cancels an active project.
// Undisbursed budget stays pooled in the treasury.
type ProjectCancelledEvent struct {
	// Idx is the project index
	Idx uint64
	// Undisbursed is the budget remaining unreleased at cancellation
	Undisbursed uint64
}

// TreasuryDepositEventType is the event type for treasury deposits
const TreasuryDepositEventType = EventType("treasury.deposit")

// TreasuryDepositEvent is emitted when any identity funds the treasury
type TreasuryDepositEvent struct {
	// From is the depositing identity
	From string
	// Amount is the deposited amount
	Amount uint64
	// Balance is the treasury balance after the deposit
	Balance uint64
}

// TreasuryWithdrawalEventType is the event type for emergency withdrawals
const TreasuryWithdrawalEventType = EventType("treasury.withdrawal")

// TreasuryWithdrawalEvent is emitted when the owner withdraws funds outside
// the milestone protocol
type TreasuryWithdrawalEvent struct {
	// To is the recipient identity
	To string
	// Amount is the withdrawn amount
	Amount uint64
	// Balance is the treasury balance after the withdrawal
	Balance uint64
}
