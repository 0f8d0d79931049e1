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

package chain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/event"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepAssignsIncreasingHeights(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{GenesisHeight: 100})
	var seen []uint64
	for range 3 {
		err := rt.Step("alice", func(op *chain.Op) error {
			seen = append(seen, op.Height())
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []uint64{101, 102, 103}, seen)
	assert.Equal(t, uint64(103), rt.Height())
}

func TestFailedStepStillAdvancesHeight(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{})
	stepErr := errors.New("nope")
	err := rt.Step("alice", func(op *chain.Op) error {
		return stepErr
	})
	require.ErrorIs(t, err, stepErr)
	assert.Equal(t, uint64(1), rt.Height())
}

func TestTransfer(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{
		GenesisAccounts: map[chain.Identity]uint64{
			"alice": 1000,
		},
	})
	err := rt.Step("alice", func(op *chain.Op) error {
		return op.Transfer(400, "alice", "bob")
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(600), rt.Balance("alice"))
	assert.Equal(t, uint64(400), rt.Balance("bob"))
}

func TestTransferInsufficientBalance(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{
		GenesisAccounts: map[chain.Identity]uint64{
			"alice": 100,
		},
	})
	err := rt.Step("alice", func(op *chain.Op) error {
		return op.Transfer(400, "alice", "bob")
	})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindInsufficientFunds))
	assert.Equal(t, uint64(100), rt.Balance("alice"))
	assert.Equal(t, uint64(0), rt.Balance("bob"))
}

func TestFailedStepRevertsJournal(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{
		GenesisAccounts: map[chain.Identity]uint64{
			"alice": 1000,
			"carol": 500,
		},
	})
	stepErr := errors.New("validation failed after transfers")
	err := rt.Step("alice", func(op *chain.Op) error {
		if err := op.Transfer(300, "alice", "bob"); err != nil {
			return err
		}
		if err := op.Transfer(200, "carol", "bob"); err != nil {
			return err
		}
		return stepErr
	})
	require.ErrorIs(t, err, stepErr)
	// Both transfers rolled back
	assert.Equal(t, uint64(1000), rt.Balance("alice"))
	assert.Equal(t, uint64(500), rt.Balance("carol"))
	assert.Equal(t, uint64(0), rt.Balance("bob"))
}

func TestEmitOnlyOnCommit(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	rt := chain.NewRuntime(chain.RuntimeConfig{EventBus: eb})
	_, subCh := eb.Subscribe(event.TreasuryDepositEventType)

	// Failed operation publishes nothing
	err := rt.Step("alice", func(op *chain.Op) error {
		op.Emit(
			event.TreasuryDepositEventType,
			event.TreasuryDepositEvent{Amount: 1},
		)
		return errors.New("abort")
	})
	require.Error(t, err)
	select {
	case <-subCh:
		t.Fatalf("received event from failed operation")
	case <-time.After(50 * time.Millisecond):
	}

	// Committed operation publishes queued events
	err = rt.Step("alice", func(op *chain.Op) error {
		op.Emit(
			event.TreasuryDepositEventType,
			event.TreasuryDepositEvent{Amount: 2},
		)
		return nil
	})
	require.NoError(t, err)
	select {
	case evt := <-subCh:
		data, ok := evt.Data.(event.TreasuryDepositEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(2), data.Amount)
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}

func TestStepRequiresCaller(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{})
	err := rt.Step("", func(op *chain.Op) error { return nil })
	require.ErrorIs(t, err, chain.ErrEmptyIdentity)
}

func TestFund(t *testing.T) {
	rt := chain.NewRuntime(chain.RuntimeConfig{})
	require.NoError(t, rt.Fund("alice", 250))
	assert.Equal(t, uint64(250), rt.Balance("alice"))
	require.ErrorIs(t, rt.Fund("", 1), chain.ErrEmptyIdentity)
}
