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

package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindMatching(t *testing.T) {
	err := New(KindNotReady, "milestone not next in line")
	assert.True(t, Is(err, KindNotReady))
	assert.False(t, Is(err, KindClosed))
	assert.Equal(t, KindNotReady, KindOf(err))
}

func TestKindMatchingThroughWrapping(t *testing.T) {
	inner := New(KindInsufficientFunds, "treasury below requested amount")
	wrapped := fmt.Errorf("disburse milestone 2: %w", inner)
	assert.True(t, Is(wrapped, KindInsufficientFunds))
	assert.Equal(t, KindInsufficientFunds, KindOf(wrapped))
}

func TestSentinelMatch(t *testing.T) {
	sentinel := New(KindAlreadyDone, "already voted")
	err := fmt.Errorf("vote: %w", sentinel)
	require.True(t, errors.Is(err, sentinel))
	// Different message, same kind, still matches the bare-kind target
	other := New(KindAlreadyDone, "milestone already disbursed")
	assert.False(t, errors.Is(other, sentinel))
	assert.True(t, errors.Is(other, New(KindAlreadyDone, "")))
}

func TestNonFaultError(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, Is(err, KindNotFound))
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "not authorized", KindNotAuthorized.String())
	assert.Equal(t, "closed", KindClosed.String())
	assert.Equal(t, "unknown", Kind(250).String())
	assert.Equal(t, "not found", New(KindNotFound, "").Error())
	assert.Equal(t, "no such proposal", New(KindNotFound, "no such proposal").Error())
}
