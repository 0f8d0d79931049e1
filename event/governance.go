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

package event

// ProposalSubmittedEventType is the event type for newly submitted proposals
const ProposalSubmittedEventType = EventType("proposal.submitted")

// ProposalSubmittedEvent is emitted when a digitization proposal enters the
// voting period
type ProposalSubmittedEvent struct {
	// Idx is the proposal index
	Idx uint64
	// Proposer is the identity that submitted the proposal
	Proposer string
	// Institution is the identity receiving funds if approved
	Institution string
	// TotalBudget is the requested budget in the smallest value unit
	TotalBudget uint64
	// VotingEnd is the height at which voting closes
	VotingEnd uint64
	// Height is the height the proposal was submitted at
	Height uint64
}

// VoteCastEventType is the event type for votes on proposals
const VoteCastEventType = EventType("proposal.vote")

// VoteCastEvent is emitted when an identity votes on an open proposal
type VoteCastEvent struct {
	// ProposalIdx is the proposal voted on
	ProposalIdx uint64
	// Voter is the identity that cast the vote
	Voter string
	// Support is the vote direction
	Support bool
	// VotesFor is the running support tally after this vote
	VotesFor uint64
	// VotesAgainst is the running opposition tally after this vote
	VotesAgainst uint64
}

// ProposalApprovedEventType is the event type for approved proposals
const ProposalApprovedEventType = EventType("proposal.approved")

// ProposalApprovedEvent is emitted when finalize approves a proposal and a
// funded project has been created from its schedule
type ProposalApprovedEvent struct {
	// Idx is the proposal index
	Idx uint64
	// ProjectIdx is the index of the project created from the proposal
	ProjectIdx uint64
	// VotesFor is the final support tally
	VotesFor uint64
}

// ProposalRejectedEventType is the event type for rejected proposals
const ProposalRejectedEventType = EventType("proposal.rejected")

// ProposalRejectedEvent is emitted when finalize closes a proposal without
// enough supporting votes
type ProposalRejectedEvent struct {
	// Idx is the proposal index
	Idx uint64
	// VotesFor is the final support tally
	VotesFor uint64
	// VotesAgainst is the final opposition tally
	VotesAgainst uint64
}

// ProposalCancelledEventType is the event type for proposer-cancelled proposals
const ProposalCancelledEventType = EventType("proposal.cancelled")

// ProposalCancelledEvent is emitted when a proposer withdraws a proposal
// before voting ends
type ProposalCancelledEvent struct {
	// Idx is the proposal index
	Idx uint64
}
