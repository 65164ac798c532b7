// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/registry"
	"github.com/IIpapuII/fescvotaciones/tally"
	"github.com/IIpapuII/fescvotaciones/testutil"
	"github.com/IIpapuII/fescvotaciones/voting"
)

func TestReconcileHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(registry.New(db), tally.NewAggregator(db))

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)
	voterID := testutil.CreateTestVoter(t, db, "1000001", models.CategoryStudent)
	testutil.InsertTestBallot(t, db, voterID, council, slate, false)

	req := testutil.MakeRequest("POST", "/admin/reconcile", nil, nil)
	w := httptest.NewRecorder()
	handler.Reconcile(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ReconcileResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Reconciled != 1 {
		t.Errorf("Expected 1 reconciled, got %d", resp.Reconciled)
	}

	// Repeat run reconciles nothing
	req = testutil.MakeRequest("POST", "/admin/reconcile", nil, nil)
	w = httptest.NewRecorder()
	handler.Reconcile(w, req)

	testutil.AssertJSON(t, w, &resp)
	if resp.Reconciled != 0 {
		t.Errorf("Expected 0 reconciled on repeat, got %d", resp.Reconciled)
	}
}

func TestPurgeHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(registry.New(db), tally.NewAggregator(db))

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)
	voterA := testutil.CreateTestVoter(t, db, "1000001", models.CategoryStudent)
	voterB := testutil.CreateTestVoter(t, db, "1000002", models.CategoryStudent)
	testutil.InsertTestBallot(t, db, voterA, council, slate, true)
	testutil.InsertTestBallot(t, db, voterB, council, slate, false)

	req := testutil.MakeRequest("POST", "/admin/purge", nil, nil)
	w := httptest.NewRecorder()
	handler.Purge(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PurgeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Reconciled != 1 {
		t.Errorf("Expected 1 reconciled, got %d", resp.Reconciled)
	}
	if resp.Purged != 2 {
		t.Errorf("Expected 2 purged, got %d", resp.Purged)
	}

	var ballots int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&ballots); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	if ballots != 0 {
		t.Errorf("Expected 0 ballots after purge, got %d", ballots)
	}
}

func TestOverrideHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(registry.New(db), tally.NewAggregator(db))
	wf := voting.NewWorkflow(db)

	council := testutil.CreateTestCouncil(t, db, "Academic Council")
	slate := testutil.CreateTestSlate(t, db, council, 1, models.CategoryStudent)
	voterID := testutil.CreateTestVoter(t, db, "1000001", models.CategoryStudent)

	ip := "10.0.0.1"
	if _, err := wf.CastBallots(voterID, &ip, map[string]string{council: slate}); err != nil {
		t.Fatalf("CastBallots failed: %v", err)
	}

	req := testutil.MakeRequest("POST", "/admin/override/"+voterID, nil, nil)
	req.SetPathValue("voterID", voterID)
	w := httptest.NewRecorder()
	handler.Override(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OverrideResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.BallotsRemoved != 1 {
		t.Errorf("Expected 1 ballot removed, got %d", resp.BallotsRemoved)
	}

	var hasVoted bool
	if err := db.QueryRow(`SELECT has_voted FROM voter WHERE id = $1`, voterID).Scan(&hasVoted); err != nil {
		t.Fatalf("Failed to read voter: %v", err)
	}
	if hasVoted {
		t.Error("Expected voter castable again after override")
	}
}

func TestOverrideHandlerUnknownVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(registry.New(db), tally.NewAggregator(db))

	req := testutil.MakeRequest("POST", "/admin/override/no-such-voter", nil, nil)
	req.SetPathValue("voterID", "no-such-voter")
	w := httptest.NewRecorder()
	handler.Override(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
