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

func milestoneOrder(db *gorm.DB) *gorm.DB {
	return db.Order("milestone_index ASC")
}

// GetProposal returns a proposal by index, with its milestone schedule in
// order
func (d *Database) GetProposal(
	idx uint64,
	txn *Txn,
) (*models.Proposal, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var proposal models.Proposal
	if result := txn.Metadata().
		Preload("Milestones", milestoneOrder).
		Where("idx = ?", idx).
		First(&proposal); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", result.Error)
	}
	return &proposal, nil
}

// GetProposals returns all proposals ordered by index
func (d *Database) GetProposals(
	txn *Txn,
) ([]*models.Proposal, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var proposals []*models.Proposal
	if result := txn.Metadata().
		Preload("Milestones", milestoneOrder).
		Order("idx ASC").
		Find(&proposals); result.Error != nil {
		return nil, fmt.Errorf("failed to get proposals: %w", result.Error)
	}
	return proposals, nil
}

// SetProposal creates or updates a proposal and its milestone schedule
func (d *Database) SetProposal(
	proposal *models.Proposal,
	txn *Txn,
) error {
	if proposal == nil {
		return errors.New("proposal cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Save(proposal); result.Error != nil {
		return fmt.Errorf("failed to set proposal: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit proposal: %w", err)
		}
	}
	return nil
}
