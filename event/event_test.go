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

package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/event"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEventBusSingleSubscriber(t *testing.T) {
	testEvtData := event.ProposalSubmittedEvent{Idx: 7, TotalBudget: 5000}
	eb := event.NewEventBus(nil, nil)
	_, subCh := eb.Subscribe(event.ProposalSubmittedEventType)
	eb.Publish(
		event.ProposalSubmittedEventType,
		event.NewEvent(event.ProposalSubmittedEventType, testEvtData),
	)
	select {
	case evt, ok := <-subCh:
		if !ok {
			t.Fatalf("event channel closed unexpectedly")
		}
		switch v := evt.Data.(type) {
		case event.ProposalSubmittedEvent:
			require.Equal(t, testEvtData, v)
		default:
			t.Fatalf(
				"event data was not of expected type, expected ProposalSubmittedEvent, got %T",
				evt.Data,
			)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	testEvtData := event.MilestoneDisbursedEvent{ProjectIdx: 1, Amount: 2000}
	eb := event.NewEventBus(nil, nil)
	_, sub1Ch := eb.Subscribe(event.MilestoneDisbursedEventType)
	_, sub2Ch := eb.Subscribe(event.MilestoneDisbursedEventType)
	eb.Publish(
		event.MilestoneDisbursedEventType,
		event.NewEvent(event.MilestoneDisbursedEventType, testEvtData),
	)
	var gotVal1, gotVal2 bool
	for {
		if gotVal1 && gotVal2 {
			break
		}
		select {
		case evt, ok := <-sub1Ch:
			if !ok {
				t.Fatalf("event channel closed unexpectedly")
			}
			if gotVal1 {
				t.Fatalf("received unexpected event")
			}
			require.Equal(t, testEvtData, evt.Data)
			gotVal1 = true
		case evt, ok := <-sub2Ch:
			if !ok {
				t.Fatalf("event channel closed unexpectedly")
			}
			if gotVal2 {
				t.Fatalf("received unexpected event")
			}
			require.Equal(t, testEvtData, evt.Data)
			gotVal2 = true
		case <-time.After(1 * time.Second):
			t.Fatalf("timeout waiting for event")
		}
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	subId, subCh := eb.Subscribe(event.VoteCastEventType)
	eb.Unsubscribe(event.VoteCastEventType, subId)
	eb.Publish(
		event.VoteCastEventType,
		event.NewEvent(event.VoteCastEventType, event.VoteCastEvent{}),
	)
	select {
	case _, ok := <-subCh:
		if !ok {
			// Expected: Unsubscribe closes the subscriber channel
			return
		}
		t.Fatalf("received unexpected event")
	case <-time.After(1 * time.Second):
		t.Fatalf("subscriber channel was not closed after Unsubscribe")
	}
}

func TestEventBusSubscribeFunc(t *testing.T) {
	defer goleak.VerifyNone(t)
	eb := event.NewEventBus(nil, nil)
	var count atomic.Int64
	eb.SubscribeFunc(
		event.TreasuryDepositEventType,
		func(evt event.Event) {
			count.Add(1)
		},
	)
	for range 3 {
		eb.Publish(
			event.TreasuryDepositEventType,
			event.NewEvent(
				event.TreasuryDepositEventType,
				event.TreasuryDepositEvent{Amount: 1000},
			),
		)
	}
	require.Eventually(t, func() bool {
		return count.Load() == 3
	}, 2*time.Second, 10*time.Millisecond)
	// Stop must close subscriber channels so the handler goroutine exits
	eb.Stop()
}

func TestEventBusStopAllowsReuse(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	_, oldCh := eb.Subscribe(event.ProjectCreatedEventType)
	eb.Stop()
	_, ok := <-oldCh
	require.False(t, ok, "subscriber channel should be closed after Stop")
	// Bus remains usable after Stop
	_, newCh := eb.Subscribe(event.ProjectCreatedEventType)
	eb.Publish(
		event.ProjectCreatedEventType,
		event.NewEvent(
			event.ProjectCreatedEventType,
			event.ProjectCreatedEvent{Idx: 0},
		),
	)
	select {
	case evt := <-newCh:
		require.Equal(t, event.ProjectCreatedEventType, evt.Type)
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}
