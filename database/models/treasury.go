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

// Treasury is the pooled balance funding all active projects. A single row
// (TreasuryRowID) exists; the balance is never negative and every change is
// paired with an equal native value transfer in the same operation. The
// deposit/withdrawal totals back the conservation property:
// balance + sum(disbursed) == total_deposited - total_withdrawn.
type Treasury struct {
	ID             uint   `gorm:"primarykey"`
	Balance        uint64 `gorm:"not null"`
	TotalDeposited uint64 `gorm:"not null"`
	TotalWithdrawn uint64 `gorm:"not null"`
}

// TreasuryRowID is the fixed primary key of the singleton treasury row
const TreasuryRowID = uint(1)

// TableName returns the table name
func (Treasury) TableName() string {
	return "treasury"
}
