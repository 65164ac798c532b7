// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Voter category constants
const (
	CategoryStudent        = "student"
	CategoryTeacher        = "teacher"
	CategoryGraduate       = "graduate"
	CategoryAdministrative = "administrative"
)

// Voting mode constants. A voter starts as ModeUnset; the mode is set
// exactly once, either when ballots are cast (derived from IP presence)
// or when the jury confirms a physical vote.
const (
	ModeUnset    = "unset"
	ModeInPerson = "in_person"
	ModeVirtual  = "virtual"
)

// Candidate position constants
const (
	PositionPrincipal = "principal"
	PositionAlternate = "alternate"
)

// ValidCategory reports whether c is one of the known voter categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryStudent, CategoryTeacher, CategoryGraduate, CategoryAdministrative:
		return true
	}
	return false
}

// Request types

type ValidateEntryRequest struct {
	Document string `json:"document"`
}

// Selections maps council ID -> slate ID, one choice per council.
type CastBallotsRequest struct {
	Document   string            `json:"document"`
	Selections map[string]string `json:"selections"`
}

type JuryConfirmRequest struct {
	Document string `json:"document"`
}

// Response types

type VoterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Mode     string `json:"mode"`
}

type CastBallotsResponse struct {
	BallotsCast int    `json:"ballots_cast"`
	Mode        string `json:"mode"`
}

type JuryConfirmResponse struct {
	VoterID string `json:"voter_id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ReconcileResponse struct {
	Reconciled int `json:"reconciled"`
}

type PurgeResponse struct {
	Reconciled int `json:"reconciled"`
	Purged     int `json:"purged"`
}

type OverrideResponse struct {
	VoterID        string `json:"voter_id"`
	BallotsRemoved int    `json:"ballots_removed"`
}

// Domain types

type Voter struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	Category  string     `json:"category"`
	Mode      string     `json:"mode"`
	HasVoted  bool       `json:"has_voted"`
	VotingIP  *string    `json:"-"` // Never expose in JSON
	VotedAt   *time.Time `json:"voted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CouncilType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type Slate struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	CouncilID string    `json:"council_id"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Candidate struct {
	ID       string `json:"id"`
	SlateID  string `json:"slate_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type Ballot struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"-"` // Never expose in JSON
	CouncilID string    `json:"council_id"`
	SlateID   string    `json:"slate_id"`
	CastIP    *string   `json:"-"` // Never expose in JSON
	CastAt    time.Time `json:"cast_at"`
	Tallied   bool      `json:"tallied"`
}

// Catalog types

type SlateWithCandidates struct {
	Slate      Slate       `json:"slate"`
	Candidates []Candidate `json:"candidates"`
}

type CouncilSlates struct {
	Council CouncilType           `json:"council"`
	Slates  []SlateWithCandidates `json:"slates"`
}

// Tally types

// TallyResult is one de-identified count row for a council/category pair,
// enriched with the slate number and name for display.
type TallyResult struct {
	SlateID    string  `json:"slate_id"`
	Number     int     `json:"number"`
	Name       string  `json:"name"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type CouncilResults struct {
	CouncilID  string        `json:"council_id"`
	Category   string        `json:"category"`
	TotalVotes int           `json:"total_votes"`
	Results    []TallyResult `json:"results"`
}

// Statistics types

type VoteStats struct {
	TotalVoters         int       `json:"total_voters"`
	TotalVoted          int       `json:"total_voted"`
	VotedStudents       int       `json:"voted_students"`
	VotedTeachers       int       `json:"voted_teachers"`
	VotedGraduates      int       `json:"voted_graduates"`
	VotedAdministrative int       `json:"voted_administrative"`
	Participation       float64   `json:"participation"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
