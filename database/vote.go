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

package database

import (
	"errors"
	"fmt"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	"gorm.io/gorm"
)

// GetVote returns the vote cast by a voter on a proposal, or nil if the
// voter has not voted
func (d *Database) GetVote(
	proposalIdx uint64,
	voter string,
	txn *Txn,
) (*models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var vote models.Vote
	if result := txn.Metadata().Where(
		"proposal_idx = ? AND voter = ?",
		proposalIdx,
		voter,
	).First(&vote); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", result.Error)
	}
	return &vote, nil
}

// GetVotes returns all votes for a proposal
func (d *Database) GetVotes(
	proposalIdx uint64,
	txn *Txn,
) ([]*models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var votes []*models.Vote
	if result := txn.Metadata().Where(
		"proposal_idx = ?",
		proposalIdx,
	).Order("added_height ASC").Find(&votes); result.Error != nil {
		return nil, fmt.Errorf("failed to get votes: %w", result.Error)
	}
	return votes, nil
}

// AddVote records a vote. Votes are write-once; the unique index over
// (proposal_idx, voter) rejects duplicates at the storage layer.
func (d *Database) AddVote(
	vote *models.Vote,
	txn *Txn,
) error {
	if vote == nil {
		return errors.New("vote cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Create(vote); result.Error != nil {
		return fmt.Errorf("failed to add vote: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit vote: %w", err)
		}
	}
	return nil
}
