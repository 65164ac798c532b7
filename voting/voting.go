// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/tally"
)

// Workflow orchestrates ballot casting: voter validation, duplicate
// rules, ballot writes, tally increments, and the has-voted flip, all in
// one transaction.
type Workflow struct {
	db *sql.DB
}

func NewWorkflow(db *sql.DB) *Workflow {
	return &Workflow{db: db}
}

// CastBallots records one ballot per selected council for the voter and
// returns the number of ballots cast. clientIP is nil for jury-witnessed
// in-person casting. Any failure rolls back the whole attempt: no
// partial ballots, no partial tally increments, has-voted untouched.
func (wf *Workflow) CastBallots(voterID string, clientIP *string, selections map[string]string) (int, error) {
	if len(selections) == 0 {
		return 0, ErrNoSelection
	}

	tx, err := wf.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin casting transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the voter row so two concurrent attempts for the same voter
	// serialize; the second sees has_voted = true.
	var category, mode string
	var hasVoted bool
	err = tx.QueryRow(`
		SELECT category, voting_mode, has_voted
		FROM voter
		WHERE id = $1
		FOR UPDATE
	`, voterID).Scan(&category, &mode, &hasVoted)

	if err == sql.ErrNoRows {
		return 0, ErrVoterNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock voter: %w", err)
	}

	if hasVoted {
		return 0, &AlreadyVotedError{VoterID: voterID}
	}

	if mode == models.ModeInPerson && clientIP != nil {
		return 0, &ModeViolationError{VoterID: voterID}
	}

	// One completed vote per IP. In-person casting (nil IP) is exempt:
	// physical confirmations are jury-witnessed.
	if clientIP != nil {
		prior, err := votersWithIP(tx, *clientIP, voterID)
		if err != nil {
			return 0, err
		}
		if len(prior) > 0 {
			dupErr := &DuplicateIPError{IP: *clientIP, PriorVoters: prior}
			slog.Warn("casting rejected: ip already used",
				"ip", *clientIP,
				"voter_id", voterID,
				"prior_voters", len(prior),
				"detail", dupErr.Error(),
			)
			return 0, dupErr
		}
	}

	now := time.Now()
	cast := 0

	for councilID, slateID := range selections {
		if err := validateSelection(tx, councilID, slateID, category); err != nil {
			return 0, err
		}

		var exists bool
		err = tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM ballot
				WHERE voter_id = $1 AND council_id = $2
			)
		`, voterID, councilID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("check existing ballot: %w", err)
		}
		if exists {
			return 0, &DuplicateBallotError{VoterID: voterID, CouncilID: councilID}
		}

		ballotID := uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO ballot (id, voter_id, council_id, slate_id, cast_ip, cast_at, tallied)
			VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		`, ballotID, voterID, councilID, slateID, clientIP, now)

		if err != nil {
			if isUniqueViolation(err) {
				return 0, &DuplicateBallotError{VoterID: voterID, CouncilID: councilID}
			}
			return 0, fmt.Errorf("insert ballot: %w", err)
		}

		if err := tally.RegisterVote(tx, slateID, councilID, category); err != nil {
			return 0, err
		}

		_, err = tx.Exec(`UPDATE ballot SET tallied = TRUE WHERE id = $1`, ballotID)
		if err != nil {
			return 0, fmt.Errorf("mark ballot tallied: %w", err)
		}

		cast++
	}

	newMode := models.ModeInPerson
	if clientIP != nil {
		newMode = models.ModeVirtual
	}

	_, err = tx.Exec(`
		UPDATE voter
		SET has_voted = TRUE, voting_mode = $1, voting_ip = $2, voted_at = $3, updated_at = $3
		WHERE id = $4
	`, newMode, clientIP, now, voterID)
	if err != nil {
		return 0, fmt.Errorf("mark voter as voted: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit casting transaction: %w", err)
	}

	slog.Info("ballots cast",
		"voter_id", voterID,
		"ballots", cast,
		"mode", newMode,
	)

	return cast, nil
}

// votersWithIP returns other voters whose completed vote was recorded
// from the given IP.
func votersWithIP(tx *sql.Tx, ip, excludeVoterID string) ([]PriorVoter, error) {
	rows, err := tx.Query(`
		SELECT id, name
		FROM voter
		WHERE voting_ip = $1 AND has_voted = TRUE AND id <> $2
		ORDER BY voted_at
	`, ip, excludeVoterID)
	if err != nil {
		return nil, fmt.Errorf("query voters by ip: %w", err)
	}
	defer rows.Close()

	var prior []PriorVoter
	for rows.Next() {
		var v PriorVoter
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan prior voter: %w", err)
		}
		prior = append(prior, v)
	}
	return prior, rows.Err()
}

// validateSelection checks that the slate is active, belongs to the
// council, and matches the voter's category, and that the council itself
// is active.
func validateSelection(tx *sql.Tx, councilID, slateID, voterCategory string) error {
	var slateCategory string
	var slateActive, councilActive bool
	err := tx.QueryRow(`
		SELECT s.category, s.active, c.active
		FROM slate s
		JOIN council_type c ON c.id = s.council_id
		WHERE s.id = $1 AND s.council_id = $2
	`, slateID, councilID).Scan(&slateCategory, &slateActive, &councilActive)

	if err == sql.ErrNoRows {
		return &InvalidSelectionError{CouncilID: councilID, SlateID: slateID, Reason: "slate does not belong to council"}
	}
	if err != nil {
		return fmt.Errorf("validate selection: %w", err)
	}

	if slateCategory != voterCategory {
		return &InvalidSelectionError{CouncilID: councilID, SlateID: slateID, Reason: "slate is not for the voter's category"}
	}
	if !slateActive {
		return &InvalidSelectionError{CouncilID: councilID, SlateID: slateID, Reason: "slate is not active"}
	}
	if !councilActive {
		return &InvalidSelectionError{CouncilID: councilID, SlateID: slateID, Reason: "council is not active"}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
