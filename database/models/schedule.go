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

import (
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
)

// MaxMilestones is the maximum number of tranches in a schedule
const MaxMilestones = 10

var (
	ErrInvalidBudget = fault.New(
		fault.KindInvalidInput,
		"total budget must be greater than zero",
	)
	ErrNoMilestones = fault.New(
		fault.KindInvalidInput,
		"milestone schedule is empty",
	)
	ErrTooManyMilestones = fault.New(
		fault.KindInvalidInput,
		"milestone schedule exceeds maximum length",
	)
	ErrMilestoneSumMismatch = fault.New(
		fault.KindInvalidInput,
		"milestone amounts do not sum to total budget",
	)
	ErrEmptyTitle = fault.New(
		fault.KindInvalidInput,
		"title must not be empty",
	)
	ErrEmptyDescription = fault.New(
		fault.KindInvalidInput,
		"description must not be empty",
	)
)

// ValidateSchedule checks the static preconditions shared by proposal
// submission and project creation: positive budget, schedule length in
// [1, MaxMilestones], and milestone amounts summing exactly to the budget.
// Length bounds are checked before the sum.
func ValidateSchedule(totalBudget uint64, milestones []uint64) error {
	if totalBudget == 0 {
		return ErrInvalidBudget
	}
	if len(milestones) == 0 {
		return ErrNoMilestones
	}
	if len(milestones) > MaxMilestones {
		return ErrTooManyMilestones
	}
	var sum uint64
	for _, amount := range milestones {
		if sum+amount < sum {
			return ErrMilestoneSumMismatch
		}
		sum += amount
	}
	if sum != totalBudget {
		return ErrMilestoneSumMismatch
	}
	return nil
}

// ValidateDetails checks the free-form proposal fields
func ValidateDetails(title, description string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if description == "" {
		return ErrEmptyDescription
	}
	return nil
}
