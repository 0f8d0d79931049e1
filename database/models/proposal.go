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

package models

import "github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"

var ErrProposalNotFound = fault.New(
	fault.KindNotFound,
	"proposal not found",
)

// ProposalStatus is the closed set of proposal lifecycle states
type ProposalStatus uint8

const (
	ProposalStatusVoting ProposalStatus = iota
	ProposalStatusApproved
	ProposalStatusRejected
	ProposalStatusCancelled
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusVoting:
		return "voting"
	case ProposalStatusApproved:
		return "approved"
	case ProposalStatusRejected:
		return "rejected"
	case ProposalStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Proposal represents a digitization project proposal submitted for
// community vote. The milestone schedule is fixed at submission; only the
// vote tallies and status change afterwards, and the status is terminal
// once it leaves voting.
type Proposal struct {
	ID           uint                `gorm:"primarykey"`
	Idx          uint64              `gorm:"uniqueIndex;not null"`
	Proposer     string              `gorm:"index;size:128;not null"`
	Institution  string              `gorm:"size:128;not null"`
	TotalBudget  uint64              `gorm:"not null"`
	Title        string              `gorm:"size:256;not null"`
	Description  string              `gorm:"not null"`
	Status       ProposalStatus      `gorm:"index;not null"`
	VotesFor     uint64              `gorm:"not null"`
	VotesAgainst uint64              `gorm:"not null"`
	VotingEnd    uint64              `gorm:"index;not null"`
	AddedHeight  uint64              `gorm:"index;not null"`
	Milestones   []ProposalMilestone `gorm:"foreignKey:ProposalID"`
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}

// MilestoneAmounts returns the ordered milestone amount schedule
func (p *Proposal) MilestoneAmounts() []uint64 {
	amounts := make([]uint64, len(p.Milestones))
	for i, m := range p.Milestones {
		amounts[i] = m.Amount
	}
	return amounts
}

// ProposalMilestone is one ordered tranche of a proposal's budget
type ProposalMilestone struct {
	ID         uint   `gorm:"primarykey"`
	ProposalID uint   `gorm:"uniqueIndex:idx_proposal_milestone,priority:1;not null"`
	Index      uint32 `gorm:"column:milestone_index;uniqueIndex:idx_proposal_milestone,priority:2;not null"`
	Amount     uint64 `gorm:"not null"`
}

// TableName returns the table name
func (ProposalMilestone) TableName() string {
	return "proposal_milestone"
}
