// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally_test

import (
	"testing"

	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/tally"
	"github.com/IIpapuII/fescvotaciones/testutil"
)

func TestRegisterVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)

	// First vote creates the row, later votes increment it
	for want := 1; want <= 3; want++ {
		if err := tally.RegisterVote(db, slate, council, models.CategoryStudent); err != nil {
			t.Fatalf("RegisterVote failed: %v", err)
		}

		var count int
		err := db.QueryRow(`
			SELECT count FROM tally_record
			WHERE slate_id = $1 AND council_id = $2 AND category = $3
		`, slate, council, models.CategoryStudent).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to read tally: %v", err)
		}
		if count != want {
			t.Errorf("Expected count %d, got %d", want, count)
		}
	}
}

func TestResultsForCouncil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	agg := tally.NewAggregator(db)

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate1 := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)
	slate2 := testutil.CreateTestSlate(t, db, council, 2, models.CategoryStudent)
	slate3 := testutil.CreateTestSlate(t, db, council, 3, models.CategoryStudent)

	// slate2: 3 votes, slate1: 1 vote, slate3: 1 vote
	votes := map[string]int{slate2: 3, slate1: 1, slate3: 1}
	for slateID, n := range votes {
		for i := 0; i < n; i++ {
			if err := tally.RegisterVote(db, slateID, council, models.CategoryStudent); err != nil {
				t.Fatalf("RegisterVote failed: %v", err)
			}
		}
	}

	results, err := agg.ResultsForCouncil(council, models.CategoryStudent)
	if err != nil {
		t.Fatalf("ResultsForCouncil failed: %v", err)
	}

	if results.TotalVotes != 5 {
		t.Errorf("Expected 5 total votes, got %d", results.TotalVotes)
	}
	if len(results.Results) != 3 {
		t.Fatalf("Expected 3 result rows, got %d", len(results.Results))
	}

	// Ordered by votes descending, ties broken by slate number ascending
	if results.Results[0].SlateID != slate2 {
		t.Errorf("Expected slate2 first, got %s", results.Results[0].SlateID)
	}
	if results.Results[1].SlateID != slate1 || results.Results[2].SlateID != slate3 {
		t.Errorf("Expected tie broken by number: slate1 then slate3, got %s then %s",
			results.Results[1].SlateID, results.Results[2].SlateID)
	}

	// Percentages to one decimal place
	if results.Results[0].Percentage != 60.0 {
		t.Errorf("Expected 60.0%%, got %v", results.Results[0].Percentage)
	}
	if results.Results[1].Percentage != 20.0 {
		t.Errorf("Expected 20.0%%, got %v", results.Results[1].Percentage)
	}
}

func TestResultsForCouncilEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	agg := tally.NewAggregator(db)
	council := testutil.CreateTestCouncil(t, db, "Academic Council")

	results, err := agg.ResultsForCouncil(council, models.CategoryStudent)
	if err != nil {
		t.Fatalf("ResultsForCouncil failed: %v", err)
	}
	if results.TotalVotes != 0 {
		t.Errorf("Expected 0 total votes, got %d", results.TotalVotes)
	}
	if len(results.Results) != 0 {
		t.Errorf("Expected empty results, got %d rows", len(results.Results))
	}
}

func TestReconcilePending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	agg := tally.NewAggregator(db)

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)

	voterA := testutil.CreateTestVoter(t, db, "1000001", models.CategoryStudent)
	voterB := testutil.CreateTestVoter(t, db, "1000002", models.CategoryStudent)

	// Two ballots left untallied by an interrupted cast
	testutil.InsertTestBallot(t, db, voterA, council, slate, false)
	testutil.InsertTestBallot(t, db, voterB, council, slate, false)

	n, err := agg.ReconcilePending()
	if err != nil {
		t.Fatalf("ReconcilePending failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 reconciled, got %d", n)
	}

	var count int
	err = db.QueryRow(`SELECT count FROM tally_record WHERE slate_id = $1`, slate).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to read tally: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected tally count 2, got %d", count)
	}

	var untallied int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ballot WHERE tallied = FALSE`).Scan(&untallied); err != nil {
		t.Fatalf("Failed to count untallied ballots: %v", err)
	}
	if untallied != 0 {
		t.Errorf("Expected 0 untallied ballots, got %d", untallied)
	}

	// Second run is a no-op
	n, err = agg.ReconcilePending()
	if err != nil {
		t.Fatalf("Second ReconcilePending failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 reconciled on repeat, got %d", n)
	}
	if err := db.QueryRow(`SELECT count FROM tally_record WHERE slate_id = $1`, slate).Scan(&count); err != nil {
		t.Fatalf("Failed to re-read tally: %v", err)
	}
	if count != 2 {
		t.Errorf("Tally changed on idempotent reconcile: got %d", count)
	}
}

func TestPurgeBallots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	agg := tally.NewAggregator(db)

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)

	voterA := testutil.CreateTestVoter(t, db, "2000001", models.CategoryStudent)
	voterB := testutil.CreateTestVoter(t, db, "2000002", models.CategoryStudent)

	// One tallied ballot and one straggler
	testutil.InsertTestBallot(t, db, voterA, council, slate, true)
	if err := tally.RegisterVote(db, slate, council, models.CategoryStudent); err != nil {
		t.Fatalf("RegisterVote failed: %v", err)
	}
	testutil.InsertTestBallot(t, db, voterB, council, slate, false)

	reconciled, purged, err := agg.PurgeBallots()
	if err != nil {
		t.Fatalf("PurgeBallots failed: %v", err)
	}
	if reconciled != 1 {
		t.Errorf("Expected 1 reconciled before purge, got %d", reconciled)
	}
	if purged != 2 {
		t.Errorf("Expected 2 purged, got %d", purged)
	}

	// Ballots gone, counts intact
	var ballots int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&ballots); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	if ballots != 0 {
		t.Errorf("Expected 0 ballots after purge, got %d", ballots)
	}

	var count int
	if err := db.QueryRow(`SELECT count FROM tally_record WHERE slate_id = $1`, slate).Scan(&count); err != nil {
		t.Fatalf("Failed to read tally: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected tally count 2 preserved after purge, got %d", count)
	}
}
