// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/IIpapuII/fescvotaciones/auth"
	"github.com/IIpapuII/fescvotaciones/cliparse"
	"github.com/IIpapuII/fescvotaciones/middleware"
	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/registry"
	"github.com/IIpapuII/fescvotaciones/voting"
)

type VotingHandler struct {
	registry *registry.Registry
	workflow *voting.Workflow
	cfg      cliparse.Config
}

func NewVotingHandler(reg *registry.Registry, wf *voting.Workflow, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{registry: reg, workflow: wf, cfg: cfg}
}

// ValidateEntry handles POST /validate
// Resolves a document number to an eligible voter.
func (h *VotingHandler) ValidateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Document == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "document is required")
		return
	}

	voter, err := h.registry.ValidateEntry(req.Document)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	slog.Info("voter validated", "voter_id", voter.ID, "category", voter.Category)

	middleware.JSONResponse(w, http.StatusOK, models.VoterSummary{
		ID:       voter.ID,
		Name:     voter.Name,
		Category: voter.Category,
		Mode:     voter.Mode,
	})
}

// CastBallots handles POST /votes
// Casts one ballot per selected council inside a single transaction.
// A jury station (X-Jury-Station header plus a valid admin token) casts
// with no client IP, which records the vote as in-person.
func (h *VotingHandler) CastBallots(w http.ResponseWriter, r *http.Request) {
	var req models.CastBallotsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Document == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "document is required")
		return
	}
	if len(req.Selections) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selections cannot be empty")
		return
	}

	voter, err := h.registry.ValidateEntry(req.Document)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	var clientIP *string
	if r.Header.Get("X-Jury-Station") != "" {
		if err := auth.ValidateAdminToken(r.Header.Get("X-Admin-Token"), h.cfg.AdminToken); err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Jury station requires a valid admin token")
			return
		}
		// nil IP: jury-witnessed in-person casting
	} else {
		ip := middleware.GetClientIP(r)
		clientIP = &ip
	}

	cast, err := h.workflow.CastBallots(voter.ID, clientIP, req.Selections)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	mode := models.ModeVirtual
	if clientIP == nil {
		mode = models.ModeInPerson
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotsResponse{
		BallotsCast: cast,
		Mode:        mode,
	})
}

// ConfirmInPerson handles POST /jury/confirm
// Marks a voter as having voted physically, without ballot rows.
func (h *VotingHandler) ConfirmInPerson(w http.ResponseWriter, r *http.Request) {
	var req models.JuryConfirmRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Document == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "document is required")
		return
	}

	voter, err := h.registry.ConfirmInPerson(req.Document)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.JuryConfirmResponse{
		VoterID: voter.ID,
		Name:    voter.Name,
		Message: "Voter marked as voted in person",
	})
}

// writeVotingError maps workflow and registry errors onto HTTP statuses.
// Unrecognized errors stay generic: transient store failures must not
// leak details, and the transaction has already rolled back.
func writeVotingError(w http.ResponseWriter, err error) {
	var alreadyVoted *voting.AlreadyVotedError
	var modeViolation *voting.ModeViolationError
	var duplicateIP *voting.DuplicateIPError
	var invalidSelection *voting.InvalidSelectionError
	var duplicateBallot *voting.DuplicateBallotError

	switch {
	case errors.Is(err, voting.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Document not found in the electoral registry")
	case errors.Is(err, registry.ErrInvalidDocument):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Document must contain only digits")
	case errors.Is(err, voting.ErrNoSelection):
		middleware.ErrorResponse(w, http.StatusBadRequest, "No selections submitted")
	case errors.As(err, &alreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "This voter has already voted")
	case errors.As(err, &modeViolation):
		middleware.ErrorResponse(w, http.StatusForbidden, "This voter must vote in person")
	case errors.As(err, &duplicateIP):
		middleware.ErrorResponse(w, http.StatusConflict, "A vote has already been cast from this address")
	case errors.As(err, &invalidSelection):
		middleware.ErrorResponse(w, http.StatusBadRequest, invalidSelection.Error())
	case errors.As(err, &duplicateBallot):
		middleware.ErrorResponse(w, http.StatusConflict, "A ballot already exists for this council")
	default:
		slog.Error("casting failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
