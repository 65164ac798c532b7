// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/IIpapuII/fescvotaciones/catalog"
	"github.com/IIpapuII/fescvotaciones/middleware"
	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/stats"
	"github.com/IIpapuII/fescvotaciones/tally"
)

type ResultsHandler struct {
	catalog    *catalog.Catalog
	aggregator *tally.Aggregator
	stats      *stats.Snapshot
}

func NewResultsHandler(cat *catalog.Catalog, agg *tally.Aggregator, snap *stats.Snapshot) *ResultsHandler {
	return &ResultsHandler{catalog: cat, aggregator: agg, stats: snap}
}

// ListSlates handles GET /slates/{category}
// Returns the active slates for the category, grouped by council, with
// candidates attached. This is the ballot card the voter sees.
func (h *ResultsHandler) ListSlates(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !models.ValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown voter category")
		return
	}

	councils, err := h.catalog.SlatesFor(category)
	if err != nil {
		slog.Error("slate listing failed", "category", category, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, councils)
}

// CouncilResults handles GET /councils/{id}/results?category=
// Returns the de-identified tally for one council and category.
func (h *ResultsHandler) CouncilResults(w http.ResponseWriter, r *http.Request) {
	councilID := r.PathValue("id")
	category := r.URL.Query().Get("category")
	if !models.ValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown voter category")
		return
	}

	results, err := h.aggregator.ResultsForCouncil(councilID, category)
	if err != nil {
		slog.Error("results query failed", "council_id", councilID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Stats handles GET /stats
// Refreshes and returns the participation snapshot.
func (h *ResultsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Refresh()
	if err != nil {
		slog.Error("stats refresh failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snapshot)
}
