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

// GetGovernanceParams returns the governance engine's params row, or nil
// if genesis initialization has not run
func (d *Database) GetGovernanceParams(
	txn *Txn,
) (*models.GovernanceParams, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var params models.GovernanceParams
	if result := txn.Metadata().Where(
		"id = ?",
		models.ParamsRowID,
	).First(&params); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to get governance params: %w",
			result.Error,
		)
	}
	return &params, nil
}

// SetGovernanceParams creates or updates the governance params row
func (d *Database) SetGovernanceParams(
	params *models.GovernanceParams,
	txn *Txn,
) error {
	if params == nil {
		return errors.New("governance params cannot be nil")
	}
	params.ID = models.ParamsRowID
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Save(params); result.Error != nil {
		return fmt.Errorf(
			"failed to set governance params: %w",
			result.Error,
		)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf(
				"failed to commit governance params: %w",
				err,
			)
		}
	}
	return nil
}

// GetLedgerParams returns the funding ledger's params row, or nil if
// genesis initialization has not run
func (d *Database) GetLedgerParams(
	txn *Txn,
) (*models.LedgerParams, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var params models.LedgerParams
	if result := txn.Metadata().Where(
		"id = ?",
		models.ParamsRowID,
	).First(&params); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to get ledger params: %w",
			result.Error,
		)
	}
	return &params, nil
}

// SetLedgerParams creates or updates the ledger params row
func (d *Database) SetLedgerParams(
	params *models.LedgerParams,
	txn *Txn,
) error {
	if params == nil {
		return errors.New("ledger params cannot be nil")
	}
	params.ID = models.ParamsRowID
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Save(params); result.Error != nil {
		return fmt.Errorf("failed to set ledger params: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit ledger params: %w", err)
		}
	}
	return nil
}
