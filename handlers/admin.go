// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/IIpapuII/fescvotaciones/middleware"
	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/registry"
	"github.com/IIpapuII/fescvotaciones/tally"
)

type AdminHandler struct {
	registry   *registry.Registry
	aggregator *tally.Aggregator
}

func NewAdminHandler(reg *registry.Registry, agg *tally.Aggregator) *AdminHandler {
	return &AdminHandler{registry: reg, aggregator: agg}
}

// Reconcile handles POST /admin/reconcile
// Registers and marks every untallied ballot. Idempotent.
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	n, err := h.aggregator.ReconcilePending()
	if err != nil {
		slog.Error("reconcile failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReconcileResponse{Reconciled: n})
}

// Purge handles POST /admin/purge
// Reconciles pending ballots and then deletes all ballot rows. The
// counts survive; the voter-to-slate links do not.
func (h *AdminHandler) Purge(w http.ResponseWriter, r *http.Request) {
	reconciled, purged, err := h.aggregator.PurgeBallots()
	if err != nil {
		slog.Error("purge failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PurgeResponse{
		Reconciled: reconciled,
		Purged:     purged,
	})
}

// Override handles POST /admin/override/{voterID}
// Reverses a voter's vote and restores their ability to cast.
func (h *AdminHandler) Override(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("voterID")

	removed, err := h.registry.Override(voterID)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OverrideResponse{
		VoterID:        voterID,
		BallotsRemoved: removed,
	})
}
