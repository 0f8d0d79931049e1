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

// Vote represents a single identity's vote on a proposal. Rows are
// write-once: the unique index over (proposal_idx, voter) makes a second
// vote by the same identity unrepresentable.
type Vote struct {
	ID          uint   `gorm:"primarykey"`
	ProposalIdx uint64 `gorm:"index:idx_vote_proposal;uniqueIndex:idx_vote_unique,priority:1;not null"`
	Voter       string `gorm:"uniqueIndex:idx_vote_unique,priority:2;size:128;not null"`
	Support     bool   `gorm:"not null"`
	AddedHeight uint64 `gorm:"index;not null"`
}

// TableName returns the table name
func (Vote) TableName() string {
	return "vote"
}
