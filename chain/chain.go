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

// Package chain implements the hosting-ledger substrate the governance and
// funding engines run on: an authenticated caller identity per operation, a
// monotonically increasing height counter, native value accounts, and
// all-or-nothing operation execution. One operation runs to completion
// before the next begins; there is no interleaving.
package chain

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/event"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
	"github.com/prometheus/client_golang/prometheus"
)

// Identity is an opaque ledger address
type Identity string

var (
	ErrEmptyIdentity        = errors.New("empty identity")
	ErrBalanceOverflow      = errors.New("account balance overflow")
	ErrTransferInsufficient = fault.New(
		fault.KindInsufficientFunds,
		"transfer exceeds sender balance",
	)
)

// RuntimeConfig configures a Runtime
type RuntimeConfig struct {
	Logger *slog.Logger
	// EventBus receives events queued by committed operations. May be nil.
	EventBus *event.EventBus
	// PromRegistry receives operation metrics. May be nil.
	PromRegistry prometheus.Registerer
	// GenesisAccounts is the initial native value distribution
	GenesisAccounts map[Identity]uint64
	// GenesisHeight is the ordering counter's starting value
	GenesisHeight uint64
}

// Runtime serializes operations against shared state, assigns each a height,
// and tracks native value accounts. It stands in for the hosting ledger's
// transaction execution: an operation either commits all of its writes or
// none of them.
type Runtime struct {
	logger   *slog.Logger
	bus      *event.EventBus
	metrics  *runtimeMetrics
	accounts map[Identity]uint64
	height   uint64
	mu       sync.Mutex
}

// NewRuntime creates a Runtime with the given genesis state
func NewRuntime(cfg RuntimeConfig) *Runtime {
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	r := &Runtime{
		logger:   logger.With("component", "chain"),
		bus:      cfg.EventBus,
		accounts: make(map[Identity]uint64),
		height:   cfg.GenesisHeight,
	}
	for id, amount := range cfg.GenesisAccounts {
		r.accounts[id] = amount
	}
	if cfg.PromRegistry != nil {
		r.initMetrics(cfg.PromRegistry)
	}
	return r
}

// Height returns the current ordering counter
func (r *Runtime) Height() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.height
}

// Balance returns the native value balance of an identity
func (r *Runtime) Balance(id Identity) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id]
}

// Fund credits native value to an identity outside of any operation. This is
// the dev faucet used for genesis and tests; it has no on-ledger analogue.
func (r *Runtime) Fund(id Identity, amount uint64) error {
	if id == "" {
		return ErrEmptyIdentity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.accounts[id]
	if cur+amount < cur {
		return ErrBalanceOverflow
	}
	r.accounts[id] = cur + amount
	return nil
}

type journalEntry struct {
	from   Identity
	to     Identity
	amount uint64
}

type queuedEvent struct {
	data any
	typ  event.EventType
}

// Op is the per-operation view handed to an executing operation. It exposes
// the authenticated caller, the operation's height, validated-and-journaled
// value transfers, and deferred event emission.
type Op struct {
	runtime *Runtime
	caller  Identity
	height  uint64
	journal []journalEntry
	events  []queuedEvent
}

// Caller returns the authenticated identity invoking the operation
func (o *Op) Caller() Identity {
	return o.caller
}

// Height returns the ordering counter assigned to the operation
func (o *Op) Height() uint64 {
	return o.height
}

// Transfer moves native value between accounts. The transfer is applied
// immediately and journaled; if the operation later fails, every journaled
// transfer is reverted before the failure is returned.
func (o *Op) Transfer(amount uint64, from, to Identity) error {
	if from == "" || to == "" {
		return ErrEmptyIdentity
	}
	// Runtime lock is already held for the duration of the operation
	fromBal := o.runtime.accounts[from]
	if fromBal < amount {
		return ErrTransferInsufficient
	}
	toBal := o.runtime.accounts[to]
	if toBal+amount < toBal {
		return ErrBalanceOverflow
	}
	o.runtime.accounts[from] = fromBal - amount
	o.runtime.accounts[to] = toBal + amount
	o.journal = append(
		o.journal,
		journalEntry{from: from, to: to, amount: amount},
	)
	return nil
}

// Emit queues an event for publication. Queued events are published only
// after the operation commits; a failed operation emits nothing.
func (o *Op) Emit(eventType event.EventType, data any) {
	o.events = append(o.events, queuedEvent{typ: eventType, data: data})
}

// Step executes fn as a single atomic operation on behalf of caller. The
// height counter advances once per step, committed or not, so heights remain
// strictly increasing across retries. On failure every journaled transfer is
// reverted and queued events are dropped.
func (r *Runtime) Step(caller Identity, fn func(*Op) error) error {
	if caller == "" {
		return ErrEmptyIdentity
	}
	r.mu.Lock()
	r.height++
	op := &Op{
		runtime: r,
		caller:  caller,
		height:  r.height,
	}
	err := fn(op)
	if err != nil {
		// Revert journaled transfers in reverse order
		for i := len(op.journal) - 1; i >= 0; i-- {
			entry := op.journal[i]
			r.accounts[entry.to] -= entry.amount
			r.accounts[entry.from] += entry.amount
		}
	}
	events := op.events
	r.mu.Unlock()
	if err != nil {
		if r.metrics != nil {
			r.metrics.opsTotal.WithLabelValues("failed").Inc()
		}
		r.logger.Debug(
			"operation failed",
			"caller", string(caller),
			"height", op.height,
			"error", err,
		)
		return err
	}
	if r.metrics != nil {
		r.metrics.opsTotal.WithLabelValues("committed").Inc()
	}
	if r.bus != nil {
		for _, evt := range events {
			r.bus.Publish(evt.typ, event.NewEvent(evt.typ, evt.data))
		}
	}
	return nil
}
