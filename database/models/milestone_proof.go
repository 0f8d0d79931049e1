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

var ErrMilestoneProofNotFound = fault.New(
	fault.KindNotFound,
	"milestone proof not found",
)

// MilestoneProof records the oracle's attestation that a project milestone
// is complete. At most one proof exists per (project, index), and a verified
// proof is never reset.
type MilestoneProof struct {
	ID             uint   `gorm:"primarykey"`
	ProjectIdx     uint64 `gorm:"index:idx_proof_project;uniqueIndex:idx_proof_unique,priority:1;not null"`
	Index          uint32 `gorm:"column:milestone_index;uniqueIndex:idx_proof_unique,priority:2;not null"`
	Verified       bool   `gorm:"not null"`
	Verifier       string `gorm:"size:128;not null"`
	VerifiedHeight uint64 `gorm:"index;not null"`
}

// TableName returns the table name
func (MilestoneProof) TableName() string {
	return "milestone_proof"
}
