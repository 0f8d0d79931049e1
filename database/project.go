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

// GetProject returns a project by index, with its milestone schedule in
// order
func (d *Database) GetProject(
	idx uint64,
	txn *Txn,
) (*models.Project, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var project models.Project
	if result := txn.Metadata().
		Preload("Milestones", milestoneOrder).
		Where("idx = ?", idx).
		First(&project); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", result.Error)
	}
	return &project, nil
}

// GetProjects returns all projects ordered by index
func (d *Database) GetProjects(
	txn *Txn,
) ([]*models.Project, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	var projects []*models.Project
	if result := txn.Metadata().
		Preload("Milestones", milestoneOrder).
		Order("idx ASC").
		Find(&projects); result.Error != nil {
		return nil, fmt.Errorf("failed to get projects: %w", result.Error)
	}
	return projects, nil
}

// SetProject creates or updates a project and its milestone schedule
func (d *Database) SetProject(
	project *models.Project,
	txn *Txn,
) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer txn.Release()
	}
	if result := txn.Metadata().Save(project); result.Error != nil {
		return fmt.Errorf("failed to set project: %w", result.Error)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit project: %w", err)
		}
	}
	return nil
}
