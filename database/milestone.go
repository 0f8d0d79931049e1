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

// GetMilestoneProof returns the proof record for a project milestone, or
// nil if the milestone has no proof
func (d *Database) GetMilestoneProof(
	projectIdx uint64,
	index uint32,
	txn *Txn,
) (*models.MilestoneProof, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var proof models.MilestoneProof
	if result := txn.Metadata().Where(
		"project_idx = ? AND milestone_index = ?",
		projectIdx,
		index,
	).First(&proof); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to get milestone proof: %w",
			result.Error,
		)
	}
	return &proof, nil
}

// GetMilestoneProofs returns all proof records for a project in milestone
// order
func (d *Database) GetMilestoneProofs(
	projectIdx uint64,
	txn *Txn,
) ([]*models.MilestoneProof, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var proofs []*models.MilestoneProof
	if result := txn.Metadata().Where(
		"project_idx = ?",
		projectIdx,
	).Order("milestone_index ASC").Find(&proofs); result.Error != nil {
		return nil, fmt.Errorf(
			"failed to get milestone proofs: %w",
			result.Error,
		)
	}
	return proofs, nil
}

// AddMilestoneProof records an oracle attestation. Proofs are write-once;
// the unique index over (project_idx, milestone_index) rejects duplicates
// at the storage layer.
func (d *Database) AddMilestoneProof(
	proof *models.MilestoneProof,
	txn *Txn,
) error {
	if proof == nil {
		return errors.New("milestone proof cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Create(proof); result.Error != nil {
		return fmt.Errorf("failed to add milestone proof: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit milestone proof: %w", err)
		}
	}
	return nil
}
