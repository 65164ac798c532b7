// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"

	"github.com/IIpapuII/fescvotaciones/models"
)

// execer lets RegisterVote run inside the casting transaction or against
// the bare connection during reconciliation.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// RegisterVote increments the de-identified count for one
// (slate, council, category) key, creating the row on first vote. The
// upsert is a single atomic read-modify-write, so concurrent increments
// on the same key cannot lose updates.
func RegisterVote(db execer, slateID, councilID, category string) error {
	_, err := db.Exec(`
		INSERT INTO tally_record (slate_id, council_id, category, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (slate_id, council_id, category)
		DO UPDATE SET count = tally_record.count + 1
	`, slateID, councilID, category)
	if err != nil {
		return fmt.Errorf("register vote: %w", err)
	}
	return nil
}

// Aggregator provides read access to tally records and the repair and
// anonymization operations over ballots.
type Aggregator struct {
	db *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ResultsForCouncil returns the counts for one council and category,
// ordered by descending votes with ties broken by ascending slate
// number, plus each slate's share of the council total (one decimal
// place, dashboard convention).
func (a *Aggregator) ResultsForCouncil(councilID, category string) (models.CouncilResults, error) {
	results := models.CouncilResults{
		CouncilID: councilID,
		Category:  category,
		Results:   []models.TallyResult{},
	}

	rows, err := a.db.Query(`
		SELECT t.slate_id, s.number, s.name, t.count
		FROM tally_record t
		JOIN slate s ON s.id = t.slate_id
		WHERE t.council_id = $1 AND t.category = $2
		ORDER BY t.count DESC, s.number ASC
	`, councilID, category)
	if err != nil {
		return results, fmt.Errorf("query council results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.TallyResult
		if err := rows.Scan(&r.SlateID, &r.Number, &r.Name, &r.Votes); err != nil {
			return results, fmt.Errorf("scan tally row: %w", err)
		}
		results.TotalVotes += r.Votes
		results.Results = append(results.Results, r)
	}
	if err := rows.Err(); err != nil {
		return results, fmt.Errorf("iterate tally rows: %w", err)
	}

	if results.TotalVotes > 0 {
		for i := range results.Results {
			share := float64(results.Results[i].Votes) / float64(results.TotalVotes) * 100
			results.Results[i].Percentage = math.Round(share*10) / 10
		}
	}

	return results, nil
}

// ReconcilePending registers every untallied ballot and marks it
// tallied. Used to repair a run whose increment step failed after the
// ballot write; once all ballots carry the tallied mark the call is a
// no-op, so it is safe to run repeatedly.
func (a *Aggregator) ReconcilePending() (int, error) {
	tx, err := a.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin reconcile transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := reconcilePendingTx(tx)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reconcile transaction: %w", err)
	}

	if n > 0 {
		slog.Info("reconciled pending ballots", "count", n)
	}
	return n, nil
}

// PurgeBallots reconciles pending ballots and then deletes every ballot
// row. This is the end-of-election anonymization step: the aggregate
// counts survive, the voter-to-slate links do not. One-way; never run
// mid-election.
func (a *Aggregator) PurgeBallots() (reconciled, purged int, err error) {
	tx, err := a.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin purge transaction: %w", err)
	}
	defer tx.Rollback()

	reconciled, err = reconcilePendingTx(tx)
	if err != nil {
		return 0, 0, err
	}

	res, err := tx.Exec(`DELETE FROM ballot`)
	if err != nil {
		return 0, 0, fmt.Errorf("purge ballots: %w", err)
	}
	deleted, _ := res.RowsAffected()
	purged = int(deleted)

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit purge transaction: %w", err)
	}

	slog.Info("ballots purged", "reconciled", reconciled, "purged", purged)
	return reconciled, purged, nil
}

type pendingBallot struct {
	id        string
	slateID   string
	councilID string
	category  string
}

func reconcilePendingTx(tx *sql.Tx) (int, error) {
	rows, err := tx.Query(`
		SELECT b.id, b.slate_id, b.council_id, s.category
		FROM ballot b
		JOIN slate s ON s.id = b.slate_id
		WHERE b.tallied = FALSE
		FOR UPDATE OF b
	`)
	if err != nil {
		return 0, fmt.Errorf("query pending ballots: %w", err)
	}

	var pending []pendingBallot
	for rows.Next() {
		var b pendingBallot
		if err := rows.Scan(&b.id, &b.slateID, &b.councilID, &b.category); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan pending ballot: %w", err)
		}
		pending = append(pending, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate pending ballots: %w", err)
	}
	rows.Close()

	for _, b := range pending {
		if err := RegisterVote(tx, b.slateID, b.councilID, b.category); err != nil {
			return 0, err
		}
		if _, err := tx.Exec(`UPDATE ballot SET tallied = TRUE WHERE id = $1`, b.id); err != nil {
			return 0, fmt.Errorf("mark ballot tallied: %w", err)
		}
	}

	return len(pending), nil
}
