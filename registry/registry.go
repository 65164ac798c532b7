// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/voting"
)

var ErrInvalidDocument = errors.New("document must contain only digits")

// Registry owns the voter-side rules: eligibility lookup, jury
// confirmation of physical votes, and the administrative override. Name,
// document, and category are provisioned externally and never mutated
// here; only has-voted, mode, IP, and timestamps are.
type Registry struct {
	db *sql.DB
}

func New(db *sql.DB) *Registry {
	return &Registry{db: db}
}

// Lookup finds a voter by document number.
func (r *Registry) Lookup(document string) (models.Voter, error) {
	var v models.Voter

	if !digitsOnly(document) {
		return v, ErrInvalidDocument
	}

	err := r.db.QueryRow(`
		SELECT id, name, document, category, voting_mode, has_voted, voting_ip, voted_at, created_at
		FROM voter
		WHERE document = $1
	`, document).Scan(
		&v.ID, &v.Name, &v.Document, &v.Category, &v.Mode,
		&v.HasVoted, &v.VotingIP, &v.VotedAt, &v.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return v, voting.ErrVoterNotFound
	}
	if err != nil {
		return v, fmt.Errorf("lookup voter: %w", err)
	}
	return v, nil
}

// ValidateEntry resolves a document to a voter eligible to cast: the
// voter must exist and must not have voted yet.
func (r *Registry) ValidateEntry(document string) (models.Voter, error) {
	v, err := r.Lookup(document)
	if err != nil {
		return v, err
	}
	if v.HasVoted {
		return v, &voting.AlreadyVotedError{VoterID: v.ID}
	}
	return v, nil
}

// ConfirmInPerson records a jury-witnessed physical vote: the voter is
// marked voted with in-person mode and no IP, without ballot rows (the
// paper ballot is the record). Rejected if the voter already voted.
func (r *Registry) ConfirmInPerson(document string) (models.Voter, error) {
	var v models.Voter

	if !digitsOnly(document) {
		return v, ErrInvalidDocument
	}

	tx, err := r.db.Begin()
	if err != nil {
		return v, fmt.Errorf("begin confirm transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		SELECT id, name, document, category, voting_mode, has_voted, voting_ip, voted_at, created_at
		FROM voter
		WHERE document = $1
		FOR UPDATE
	`, document).Scan(
		&v.ID, &v.Name, &v.Document, &v.Category, &v.Mode,
		&v.HasVoted, &v.VotingIP, &v.VotedAt, &v.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return v, voting.ErrVoterNotFound
	}
	if err != nil {
		return v, fmt.Errorf("lock voter: %w", err)
	}

	if v.HasVoted {
		return v, &voting.AlreadyVotedError{VoterID: v.ID}
	}

	now := time.Now()
	_, err = tx.Exec(`
		UPDATE voter
		SET has_voted = TRUE, voting_mode = $1, voting_ip = NULL, voted_at = $2, updated_at = $2
		WHERE id = $3
	`, models.ModeInPerson, now, v.ID)
	if err != nil {
		return v, fmt.Errorf("confirm in-person vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return v, fmt.Errorf("commit confirm transaction: %w", err)
	}

	v.HasVoted = true
	v.Mode = models.ModeInPerson
	v.VotedAt = &now

	slog.Info("in-person vote confirmed", "voter_id", v.ID)
	return v, nil
}

// Override reverses a voter's vote: tally records for the voter's
// already-tallied ballots are decremented, the ballots deleted, and the
// voter reset to castable. Returns the number of ballots removed. After
// a purge the voter's ballots no longer exist, so only the flags reset
// and the anonymized counts stay untouched.
func (r *Registry) Override(voterID string) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin override transaction: %w", err)
	}
	defer tx.Rollback()

	var hasVoted bool
	err = tx.QueryRow(`SELECT has_voted FROM voter WHERE id = $1 FOR UPDATE`, voterID).Scan(&hasVoted)
	if err == sql.ErrNoRows {
		return 0, voting.ErrVoterNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock voter: %w", err)
	}

	rows, err := tx.Query(`
		SELECT b.slate_id, b.council_id, s.category, b.tallied
		FROM ballot b
		JOIN slate s ON s.id = b.slate_id
		WHERE b.voter_id = $1
		FOR UPDATE OF b
	`, voterID)
	if err != nil {
		return 0, fmt.Errorf("query voter ballots: %w", err)
	}

	type ballotKey struct {
		slateID   string
		councilID string
		category  string
		tallied   bool
	}
	var ballots []ballotKey
	for rows.Next() {
		var b ballotKey
		if err := rows.Scan(&b.slateID, &b.councilID, &b.category, &b.tallied); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan voter ballot: %w", err)
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate voter ballots: %w", err)
	}
	rows.Close()

	// Keep the tally equal to the surviving tallied ballots.
	for _, b := range ballots {
		if !b.tallied {
			continue
		}
		_, err = tx.Exec(`
			UPDATE tally_record
			SET count = count - 1
			WHERE slate_id = $1 AND council_id = $2 AND category = $3 AND count > 0
		`, b.slateID, b.councilID, b.category)
		if err != nil {
			return 0, fmt.Errorf("decrement tally: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM ballot WHERE voter_id = $1`, voterID)
	if err != nil {
		return 0, fmt.Errorf("delete voter ballots: %w", err)
	}
	removed, _ := res.RowsAffected()

	_, err = tx.Exec(`
		UPDATE voter
		SET has_voted = FALSE, voting_mode = $1, voting_ip = NULL, voted_at = NULL, updated_at = $2
		WHERE id = $3
	`, models.ModeUnset, time.Now(), voterID)
	if err != nil {
		return 0, fmt.Errorf("reset voter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit override transaction: %w", err)
	}

	slog.Warn("vote overridden by administrator", "voter_id", voterID, "ballots_removed", removed)
	return int(removed), nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
