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

// Package fault defines the closed set of failure kinds surfaced by the
// governance and funding engines. Callers and indexers branch on the kind,
// not on error strings.
package fault

import "errors"

type Kind uint8

const (
	KindUnknown Kind = iota
	// KindNotAuthorized means the caller lacks the required role (owner,
	// oracle, proposer, or configured cross-component caller)
	KindNotAuthorized
	// KindNotFound means the referenced entity is absent or in a status
	// that makes it invisible to the operation
	KindNotFound
	// KindInvalidInput means a static precondition on the input failed
	KindInvalidInput
	// KindAlreadyDone means the operation was already performed (duplicate
	// vote, already-disbursed milestone)
	KindAlreadyDone
	// KindNotReady means a deadline or ordering precondition is unmet
	KindNotReady
	// KindInsufficientFunds means the treasury is below the required amount
	KindInsufficientFunds
	// KindClosed means the entity's lifecycle status forbids the transition
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindNotAuthorized:
		return "not authorized"
	case KindNotFound:
		return "not found"
	case KindInvalidInput:
		return "invalid input"
	case KindAlreadyDone:
		return "already done"
	case KindNotReady:
		return "not ready"
	case KindInsufficientFunds:
		return "insufficient funds"
	case KindClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error is a failure tagged with a Kind. Two Errors with the same Kind match
// via errors.Is, so sentinel values double as match targets.
type Error struct {
	msg  string
	kind Kind
}

// New creates an Error with the given kind and message. An empty message
// falls back to the kind's string form.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return e.msg
}

// Kind returns the failure kind
func (e *Error) Kind() Kind {
	return e.kind
}

// Is reports whether target is an Error of the same kind. A target with an
// empty message matches any Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.kind != e.kind {
		return false
	}
	return t.msg == "" || t.msg == e.msg
}

// Is reports whether any error in err's chain carries the given kind
func Is(err error, kind Kind) bool {
	return errors.Is(err, &Error{kind: kind})
}

// KindOf returns the kind of the first Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return KindUnknown
}
