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

var ErrProjectNotFound = fault.New(
	fault.KindNotFound,
	"project not found",
)

// ProjectStatus is the closed set of project lifecycle states
type ProjectStatus uint8

const (
	ProjectStatusActive ProjectStatus = iota
	ProjectStatusCompleted
	ProjectStatusCancelled
)

func (s ProjectStatus) String() string {
	switch s {
	case ProjectStatusActive:
		return "active"
	case ProjectStatusCompleted:
		return "completed"
	case ProjectStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Project represents a funded digitization project created from an approved
// proposal. The milestone schedule is copied verbatim from the proposal and
// never changes. Invariants maintained by the funding ledger:
// disbursed == sum(milestones[0:current_milestone]) and
// current_milestone <= len(milestones).
type Project struct {
	ID               uint               `gorm:"primarykey"`
	Idx              uint64             `gorm:"uniqueIndex;not null"`
	Institution      string             `gorm:"index;size:128;not null"`
	TotalBudget      uint64             `gorm:"not null"`
	Disbursed        uint64             `gorm:"not null"`
	CurrentMilestone uint32             `gorm:"not null"`
	Approved         bool               `gorm:"not null"`
	Title            string             `gorm:"size:256;not null"`
	Description      string             `gorm:"not null"`
	Status           ProjectStatus      `gorm:"index;not null"`
	AddedHeight      uint64             `gorm:"index;not null"`
	Milestones       []ProjectMilestone `gorm:"foreignKey:ProjectID"`
}

// TableName returns the table name
func (Project) TableName() string {
	return "project"
}

// MilestoneAmounts returns the ordered milestone amount schedule
func (p *Project) MilestoneAmounts() []uint64 {
	amounts := make([]uint64, len(p.Milestones))
	for i, m := range p.Milestones {
		amounts[i] = m.Amount
	}
	return amounts
}

// Remaining returns the undisbursed portion of the project budget
func (p *Project) Remaining() uint64 {
	if p.Disbursed > p.TotalBudget {
		return 0
	}
	return p.TotalBudget - p.Disbursed
}

// ProjectMilestone is one ordered tranche of a project's budget
type ProjectMilestone struct {
	ID        uint   `gorm:"primarykey"`
	ProjectID uint   `gorm:"uniqueIndex:idx_project_milestone,priority:1;not null"`
	Index     uint32 `gorm:"column:milestone_index;uniqueIndex:idx_project_milestone,priority:2;not null"`
	Amount    uint64 `gorm:"not null"`
}

// TableName returns the table name
func (ProjectMilestone) TableName() string {
	return "project_milestone"
}
