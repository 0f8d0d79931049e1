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

// GetTreasury returns the singleton treasury row, creating it with a zero
// balance on first access (system genesis)
func (d *Database) GetTreasury(
	txn *Txn,
) (*models.Treasury, error) {
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	var treasury models.Treasury
	result := txn.Metadata().Where(
		"id = ?",
		models.TreasuryRowID,
	).First(&treasury)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf(
				"failed to get treasury: %w",
				result.Error,
			)
		}
		treasury = models.Treasury{ID: models.TreasuryRowID}
		if result := txn.Metadata().Create(&treasury); result.Error != nil {
			return nil, fmt.Errorf(
				"failed to init treasury: %w",
				result.Error,
			)
		}
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit treasury: %w", err)
		}
	}
	return &treasury, nil
}

// SetTreasury updates the singleton treasury row
func (d *Database) SetTreasury(
	treasury *models.Treasury,
	txn *Txn,
) error {
	if treasury == nil {
		return errors.New("treasury cannot be nil")
	}
	if treasury.ID != models.TreasuryRowID {
		return errors.New("treasury row id mismatch")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Save(treasury); result.Error != nil {
		return fmt.Errorf("failed to set treasury: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit treasury: %w", err)
		}
	}
	return nil
}
