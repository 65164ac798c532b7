// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for casting failures that carry no extra detail.
var (
	ErrVoterNotFound = errors.New("voter not found")
	ErrNoSelection   = errors.New("no selections submitted")
)

// AlreadyVotedError reports an attempt to cast by a voter whose vote is
// already on record.
type AlreadyVotedError struct {
	VoterID string
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("voter %s has already voted", e.VoterID)
}

// ModeViolationError reports a virtual casting attempt by a voter
// restricted to the physical channel.
type ModeViolationError struct {
	VoterID string
}

func (e *ModeViolationError) Error() string {
	return fmt.Sprintf("voter %s must vote in person", e.VoterID)
}

// PriorVoter identifies a voter who already completed a vote from a
// given IP. Kept for the audit trail.
type PriorVoter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DuplicateIPError reports a virtual casting attempt from an IP that has
// already produced a completed vote by another voter.
type DuplicateIPError struct {
	IP          string
	PriorVoters []PriorVoter
}

func (e *DuplicateIPError) Error() string {
	names := make([]string, len(e.PriorVoters))
	for i, v := range e.PriorVoters {
		names[i] = v.Name
	}
	return fmt.Sprintf("ip %s already used to vote by: %s", e.IP, strings.Join(names, ", "))
}

// InvalidSelectionError reports a selection that does not resolve to an
// active slate of the voter's category within the named council.
type InvalidSelectionError struct {
	CouncilID string
	SlateID   string
	Reason    string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection (council %s, slate %s): %s", e.CouncilID, e.SlateID, e.Reason)
}

// DuplicateBallotError reports an existing ballot for (voter, council).
// Unreachable in practice because voters are locked and checked for
// has-voted first; the unique constraint is the final backstop.
type DuplicateBallotError struct {
	VoterID   string
	CouncilID string
}

func (e *DuplicateBallotError) Error() string {
	return fmt.Sprintf("voter %s already has a ballot for council %s", e.VoterID, e.CouncilID)
}
