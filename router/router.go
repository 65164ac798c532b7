// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/IIpapuII/fescvotaciones/catalog"
	"github.com/IIpapuII/fescvotaciones/cliparse"
	"github.com/IIpapuII/fescvotaciones/handlers"
	"github.com/IIpapuII/fescvotaciones/middleware"
	"github.com/IIpapuII/fescvotaciones/registry"
	"github.com/IIpapuII/fescvotaciones/stats"
	"github.com/IIpapuII/fescvotaciones/tally"
	"github.com/IIpapuII/fescvotaciones/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the domain services
	reg := registry.New(db)
	cat := catalog.New(db)
	workflow := voting.NewWorkflow(db)
	aggregator := tally.NewAggregator(db)
	snapshot := stats.New(db)

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(reg, workflow, cfg)
	resultsHandler := handlers.NewResultsHandler(cat, aggregator, snapshot)
	adminHandler := handlers.NewAdminHandler(reg, aggregator)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter-facing operations (public)
	mux.HandleFunc("POST /validate", middleware.WithLogging(votingHandler.ValidateEntry))
	mux.HandleFunc("GET /slates/{category}", middleware.WithLogging(resultsHandler.ListSlates))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastBallots))

	// Jury station (admin token required)
	mux.HandleFunc("POST /jury/confirm", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, votingHandler.ConfirmInPerson)))

	// Results and statistics (admin token required)
	mux.HandleFunc("GET /councils/{id}/results", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, resultsHandler.CouncilResults)))
	mux.HandleFunc("GET /stats", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, resultsHandler.Stats)))

	// Repair and anonymization (admin token required)
	mux.HandleFunc("POST /admin/reconcile", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, adminHandler.Reconcile)))
	mux.HandleFunc("POST /admin/purge", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, adminHandler.Purge)))
	mux.HandleFunc("POST /admin/override/{voterID}", middleware.WithLogging(middleware.RequireAdmin(cfg.AdminToken, adminHandler.Override)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fescvotaciones API v1"))
	})

	return mux
}
