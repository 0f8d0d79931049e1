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

// ParamsRowID is the fixed primary key of the singleton params rows
const ParamsRowID = uint(1)

// GovernanceParams is the Governance Engine's own mutable state: the
// approval threshold, the fund-disbursement target allowed to receive
// project-creation calls, the administrating owner, and the dense proposal
// id counter.
type GovernanceParams struct {
	ID               uint   `gorm:"primarykey"`
	MinVotesRequired uint64 `gorm:"not null"`
	FundTarget       string `gorm:"size:128;not null"`
	OwnerAddr        string `gorm:"size:128;not null"`
	NextProposalIdx  uint64 `gorm:"not null"`
}

// TableName returns the table name
func (GovernanceParams) TableName() string {
	return "governance_params"
}

// LedgerParams is the funding ledger's own mutable state: the identities
// trusted for cross-component calls and administration, and the dense
// project id counter.
type LedgerParams struct {
	ID             uint   `gorm:"primarykey"`
	GovernanceAddr string `gorm:"size:128;not null"`
	OracleAddr     string `gorm:"size:128;not null"`
	OwnerAddr      string `gorm:"size:128;not null"`
	NextProjectIdx uint64 `gorm:"not null"`
}

// TableName returns the table name
func (LedgerParams) TableName() string {
	return "ledger_params"
}
